// Command migrate applies the SQL files under migrations/ in lexical order.
// Applied files are tracked in a schema_migrations table so reruns are safe.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	var dirFlag string
	flag.StringVar(&dirFlag, "dir", "migrations", "directory containing .sql migration files")
	flag.Parse()

	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("open database: %w", err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		exitWithError(fmt.Errorf("connect database: %w", err))
	}

	if _, err := db.ExecContext(ctx, `create table if not exists schema_migrations (
		filename text primary key,
		applied_at timestamptz not null default now()
	)`); err != nil {
		exitWithError(fmt.Errorf("ensure schema_migrations: %w", err))
	}

	entries, err := os.ReadDir(dirFlag)
	if err != nil {
		exitWithError(fmt.Errorf("read migrations dir: %w", err))
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	applied := 0
	for _, name := range files {
		var exists bool
		err := db.QueryRowContext(ctx,
			`select exists(select 1 from schema_migrations where filename = $1)`, name).Scan(&exists)
		if err != nil {
			exitWithError(fmt.Errorf("check migration %s: %w", name, err))
		}
		if exists {
			continue
		}

		contents, err := os.ReadFile(filepath.Join(dirFlag, name))
		if err != nil {
			exitWithError(fmt.Errorf("read migration %s: %w", name, err))
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			exitWithError(fmt.Errorf("begin migration %s: %w", name, err))
		}
		if _, err := tx.ExecContext(ctx, string(contents)); err != nil {
			_ = tx.Rollback()
			exitWithError(fmt.Errorf("apply migration %s: %w", name, err))
		}
		if _, err := tx.ExecContext(ctx,
			`insert into schema_migrations(filename) values ($1)`, name); err != nil {
			_ = tx.Rollback()
			exitWithError(fmt.Errorf("record migration %s: %w", name, err))
		}
		if err := tx.Commit(); err != nil {
			exitWithError(fmt.Errorf("commit migration %s: %w", name, err))
		}
		fmt.Printf("applied %s\n", name)
		applied++
	}

	if applied == 0 {
		fmt.Println("database is up to date")
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
