// Command seed loads demo artisans and products so the marketplace has
// content to browse right after a fresh migration. Product captions and
// price bands go through the same engine as real uploads.
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
	"loomcraft/internal/domain"
	"loomcraft/internal/infra"
	"loomcraft/internal/recommend"
	"loomcraft/internal/sqlinline"
)

type seedArtisan struct {
	name     string
	location string
	email    string
	status   string
	products []seedProduct
}

type seedProduct struct {
	material  string
	timeValue float64
	timeUnit  recommend.Unit
	imagePath string
}

var demoArtisans = []seedArtisan{
	{
		name:     "Lakshmi Devi",
		location: "Varanasi",
		email:    "lakshmi@example.com",
		status:   "verified",
		products: []seedProduct{
			{material: "silk", timeValue: 4, timeUnit: recommend.UnitDays, imagePath: "seed/silk-saree.jpg"},
			{material: "silk", timeValue: 18, timeUnit: recommend.UnitHours, imagePath: "seed/silk-stole.jpg"},
		},
	},
	{
		name:     "Ravi Prajapati",
		location: "Jaipur",
		email:    "ravi@example.com",
		status:   "verified",
		products: []seedProduct{
			{material: "clay", timeValue: 6, timeUnit: recommend.UnitHours, imagePath: "seed/clay-pot.jpg"},
			{material: "wood", timeValue: 2, timeUnit: recommend.UnitDays, imagePath: "seed/wood-carving.jpg"},
		},
	},
	{
		name:     "Meera Ben",
		location: "Kutch",
		email:    "meera@example.com",
		status:   "pending",
		products: []seedProduct{
			{material: "cotton", timeValue: 12, timeUnit: recommend.UnitHours, imagePath: "seed/cotton-dupatta.jpg"},
			{material: "khadi", timeValue: 3, timeUnit: recommend.UnitDays, imagePath: "seed/khadi-kurta.jpg"},
		},
	},
}

func main() {
	var passwordFlag string
	flag.StringVar(&passwordFlag, "password", "demo-password", "password assigned to every demo account")
	flag.Parse()

	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	hash, err := auth.HashPassword(passwordFlag)
	if err != nil {
		exitWithError(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "seed").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	for i, artisan := range demoArtisans {
		row := runner.QueryRow(ctx, sqlinline.QInsertArtisan,
			artisan.name, artisan.location, artisan.email, hash, "")
		var artisanID string
		if err := row.Scan(&artisanID); err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				fmt.Printf("skip %s: already seeded\n", artisan.email)
				continue
			}
			exitWithError(fmt.Errorf("insert artisan %s: %w", artisan.email, err))
		}

		if artisan.status != "pending" {
			statusRow := runner.QueryRow(ctx, sqlinline.QUpdateArtisanStatus, artisanID, artisan.status)
			var updatedID string
			if err := statusRow.Scan(&updatedID); err != nil {
				exitWithError(fmt.Errorf("update status for %s: %w", artisan.email, err))
			}
		}

		for j, product := range artisan.products {
			hours, err := recommend.NormalizeHours(product.timeValue, product.timeUnit)
			if err != nil {
				exitWithError(fmt.Errorf("seed product %s: %w", product.imagePath, err))
			}
			certificateID := domain.NewCertificateID()
			caption, err := recommend.Caption(recommend.CaptionRequest{
				Material:     product.material,
				ArtisanName:  artisan.name,
				Location:     artisan.location,
				TimeValue:    product.timeValue,
				TimeUnit:     product.timeUnit,
				SelectionKey: i*3 + j,
			})
			if err != nil {
				exitWithError(fmt.Errorf("caption for %s: %w", product.imagePath, err))
			}
			band, err := recommend.Price(recommend.PriceRequest{
				Material:  product.material,
				TimeValue: product.timeValue,
				TimeUnit:  product.timeUnit,
			})
			if err != nil {
				exitWithError(fmt.Errorf("price for %s: %w", product.imagePath, err))
			}

			insert := runner.QueryRow(ctx, sqlinline.QInsertProduct,
				artisanID, product.imagePath, product.material, hours,
				caption, band.Low, band.High, certificateID)
			var productID string
			if err := insert.Scan(&productID); err != nil {
				exitWithError(fmt.Errorf("insert product %s: %w", product.imagePath, err))
			}
		}
		fmt.Printf("seeded %s (%s) with %d products\n", artisan.name, artisan.status, len(artisan.products))
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
