package services

import (
	"time"

	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/utils"
	"gorm.io/gorm"
)

const defaultSlotCapacity = 5

// Practice runs hourly 07:00-18:00 Monday through Saturday; Sundays only
// until noon.
var (
	weekdayHours = []int{7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17}
	sundayHours  = []int{7, 8, 9, 10, 11}
)

// GenerateTimeSlots fills the calendar with bookable slots from today up to
// the given number of weeks ahead. Already-existing slots are left alone, so
// the job is safe to run daily.
func GenerateTimeSlots(db *gorm.DB, weeksAhead int) (int, error) {
	created := 0
	start := utils.Today()
	end := start.AddDate(0, 0, 7*weeksAhead)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		hours := weekdayHours
		if date.Weekday() == time.Sunday {
			hours = sundayHours
		}

		for _, hour := range hours {
			startTime := utils.At(date, hour, 0)
			endTime := utils.At(date, hour+1, 0)

			var existing int64
			err := db.Model(&models.TimeSlot{}).
				Where("date = ? AND start_time = ?", date, startTime).
				Count(&existing).Error
			if err != nil {
				return created, err
			}
			if existing > 0 {
				continue
			}

			slot := models.TimeSlot{
				Date:        date,
				StartTime:   startTime,
				EndTime:     endTime,
				MaxCapacity: defaultSlotCapacity,
			}
			if err := db.Create(&slot).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// PruneEmptySlots drops past slots nobody ever reserved. Slots with live
// reservations are historical records and stay.
func PruneEmptySlots(db *gorm.DB) (int64, error) {
	yesterday := utils.Today().AddDate(0, 0, -1)
	result := db.Where("date < ? AND reserved_count = 0", yesterday).
		Delete(&models.TimeSlot{})
	return result.RowsAffected, result.Error
}

func ListTimeSlots(db *gorm.DB, from, to *int) ([]models.TimeSlot, error) {
	query := db.Order("date, start_time")
	today := utils.Today()
	if from != nil {
		query = query.Where("date >= ?", today.AddDate(0, 0, *from))
	} else {
		query = query.Where("date >= ?", today)
	}
	if to != nil {
		query = query.Where("date <= ?", today.AddDate(0, 0, *to))
	}
	var slots []models.TimeSlot
	err := query.Find(&slots).Error
	return slots, err
}
