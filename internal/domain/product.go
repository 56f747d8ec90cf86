package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is a handmade listing with its stored engine output. Captions and
// price bands are computed once at upload and persisted; the catalog never
// recomputes them.
type Product struct {
	ID            string
	ArtisanID     string
	ImagePath     string
	Material      string
	TimeHours     float64
	Caption       string
	PriceLow      int
	PriceHigh     int
	CertificateID string
	CreatedAt     time.Time

	// Joined artisan fields for catalog responses.
	ArtisanName     string
	ArtisanLocation string
	ArtisanVerified bool
}

// NewCertificateID mints a display-only authenticity code for a product.
// It is decorative in the demo scope; nothing validates it.
func NewCertificateID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TOT-" + strings.ToUpper(hex[:8])
}
