package jobs

import (
	"log"
	"time"

	"aurum/database"
	"aurum/models"
)

// sessionMaxAge is how long an untouched miner/tower session survives.
// The stake was charged at start, so an abandoned session only holds an
// unclaimed win; sweeping it keeps the table from growing without bound.
const sessionMaxAge = 24 * time.Hour

func StartSessionCleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for {
			<-ticker.C
			cleanupStaleSessions()
		}
	}()
}

func cleanupStaleSessions() {
	cutoff := time.Now().Add(-sessionMaxAge)
	result := database.DB.
		Where("updated_at < ?", cutoff).
		Delete(&models.GameSession{})

	if result.Error != nil {
		log.Println("❌ Failed to delete stale game sessions:", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("✅ Deleted %d stale game sessions\n", result.RowsAffected)
	}
}
