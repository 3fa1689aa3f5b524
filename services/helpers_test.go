package services

import (
	"strings"
	"testing"
	"time"

	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Student{}, &models.Instructor{},
		&models.VehicleType{}, &models.Vehicle{}, &models.Package{},
		&models.Enrollment{}, &models.TimeSlot{}, &models.Reservation{},
		&models.Attendance{}, &models.ClassRecord{}, &models.Payment{},
		&models.RevokedToken{},
	))
	return db
}

// setNow pins the service clock for the duration of the test.
func setNow(t *testing.T, instant time.Time) {
	t.Helper()
	nowFunc = func() time.Time { return instant }
	t.Cleanup(func() { nowFunc = time.Now })
}

// A Tuesday, so weekday scheduling rules apply.
var baseDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func seedStudent(t *testing.T, db *gorm.DB, category string) models.Student {
	t.Helper()
	user := models.User{Username: "u-" + uuid.NewString(), Password: "x", Role: "student", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	student := models.Student{
		UserID:    user.ID,
		FirstName: "Ana",
		LastName:  "Quispe",
		DNI:       uuid.NewString()[:8],
		Phone:     "999111222",
		Email:     "ana@example.com",
		Category:  category,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func seedHourlyEnrollment(t *testing.T, db *gorm.DB, student models.Student, hours int, rate float64) models.Enrollment {
	t.Helper()
	enrollment, err := CreateEnrollment(db, CreateEnrollmentInput{
		StudentID:       student.ID,
		FinancingMode:   models.FinancingPerHour,
		HoursContracted: hours,
		HourlyRate:      rate,
	})
	require.NoError(t, err)
	return *enrollment
}

func seedSlot(t *testing.T, db *gorm.DB, date time.Time, hour, capacity int) models.TimeSlot {
	t.Helper()
	slot := models.TimeSlot{
		Date:        date,
		StartTime:   utils.At(date, hour, 0),
		EndTime:     utils.At(date, hour+1, 0),
		MaxCapacity: capacity,
	}
	require.NoError(t, db.Create(&slot).Error)
	return slot
}

func seedReservation(t *testing.T, db *gorm.DB, slot models.TimeSlot, enrollment models.Enrollment) models.Reservation {
	t.Helper()
	reservation := models.Reservation{TimeSlotID: slot.ID, EnrollmentID: enrollment.ID}
	require.NoError(t, db.Create(&reservation).Error)
	require.NoError(t, db.Model(&models.TimeSlot{}).Where("id = ?", slot.ID).
		Update("reserved_count", gorm.Expr("reserved_count + 1")).Error)
	return reservation
}

func seedInstructor(t *testing.T, db *gorm.DB) models.Instructor {
	t.Helper()
	instructor := models.Instructor{
		FirstName:     "Luis",
		LastName:      "Torres",
		DNI:           uuid.NewString()[:8],
		LicenseNumber: "Q12345",
		IsActive:      true,
	}
	require.NoError(t, db.Create(&instructor).Error)
	return instructor
}

func seedVehicle(t *testing.T, db *gorm.DB) models.Vehicle {
	t.Helper()
	vehicleType := models.VehicleType{Name: "Sedán", Transmission: "mecánica"}
	require.NoError(t, db.Create(&vehicleType).Error)

	vehicle := models.Vehicle{
		VehicleTypeID: vehicleType.ID,
		Plate:         uuid.NewString()[:7],
		Brand:         "Toyota",
		Model:         "Yaris",
		IsActive:      true,
	}
	require.NoError(t, db.Create(&vehicle).Error)
	return vehicle
}
