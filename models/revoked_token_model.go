package models

import (
	"time"
)

// RevokedToken blacklists a logged-out token (by its jti claim) until its
// natural expiry. Rows live in the shared store so revocation survives
// restarts and works across replicas; expired rows are swept by a cron job.
type RevokedToken struct {
	JTI       string    `gorm:"size:36;primary_key" json:"jti"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}
