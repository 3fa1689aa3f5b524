package jobs

import (
	"log"

	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/services"
)

const slotGenerationWeeks = 2

// MaintainTimeSlots keeps the booking calendar topped up and tidy. It runs
// daily and is idempotent.
func MaintainTimeSlots() {
	log.Println("Running job: MaintainTimeSlots...")

	created, err := services.GenerateTimeSlots(database.DB, slotGenerationWeeks)
	if err != nil {
		log.Printf("Error generating time slots: %v", err)
	} else if created > 0 {
		log.Printf("Created %d new time slot(s).", created)
	}

	pruned, err := services.PruneEmptySlots(database.DB)
	if err != nil {
		log.Printf("Error pruning time slots: %v", err)
	} else if pruned > 0 {
		log.Printf("Pruned %d empty past time slot(s).", pruned)
	}
}
