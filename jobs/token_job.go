package jobs

import (
	"log"
	"time"

	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
)

// SweepRevokedTokens drops blacklist rows whose tokens expired on their own.
func SweepRevokedTokens() {
	result := database.DB.Where("expires_at < ?", time.Now()).Delete(&models.RevokedToken{})
	if result.Error != nil {
		log.Printf("Error sweeping revoked tokens: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Swept %d expired revoked token(s).", result.RowsAffected)
	}
}
