package domain

import "time"

// VerificationStatus tracks where an artisan sits in the admin review queue.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Artisan represents a registered maker selling through the platform.
type Artisan struct {
	ID              string
	Name            string
	Location        string
	Email           string
	PasswordHash    string
	CertificatePath string
	Status          VerificationStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ProductCount    int // derived, only populated by listing queries
}

// IsVerified reports whether the admin has approved this artisan.
func (a Artisan) IsVerified() bool {
	return a.Status == VerificationVerified
}
