package services

import (
	"time"

	"github.com/escuelamanejo/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevokeToken blacklists a token's jti until its natural expiry. Revoking an
// already-revoked token is a no-op, so replayed logouts stay idempotent.
func RevokeToken(db *gorm.DB, jti string, expiresAt time.Time) error {
	revoked := models.RevokedToken{JTI: jti, ExpiresAt: expiresAt}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&revoked).Error
}
