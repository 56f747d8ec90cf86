// Command adminuser creates or resets an admin account for the verification
// dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"loomcraft/internal/auth"
	"loomcraft/internal/infra"
	"loomcraft/internal/sqlinline"
)

func main() {
	var (
		usernameFlag string
		passwordFlag string
	)

	flag.StringVar(&usernameFlag, "username", "admin", "admin username")
	flag.StringVar(&passwordFlag, "password", "", "admin password (required)")
	flag.Parse()

	_ = godotenv.Load()

	username := strings.ToLower(strings.TrimSpace(usernameFlag))
	if username == "" {
		exitWithError(errors.New("-username must not be empty"))
	}
	if strings.TrimSpace(passwordFlag) == "" {
		exitWithError(errors.New("-password is required"))
	}

	hash, err := auth.HashPassword(passwordFlag)
	if err != nil {
		exitWithError(err)
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "adminuser").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	row := runner.QueryRow(ctx, sqlinline.QInsertAdmin, username, hash)
	var adminID string
	if err := row.Scan(&adminID); err != nil {
		exitWithError(fmt.Errorf("failed to upsert admin: %w", err))
	}

	fmt.Printf("admin %s (%s) ready\n", username, adminID)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
