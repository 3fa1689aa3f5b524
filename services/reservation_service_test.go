package services

import (
	"testing"
	"time"

	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookReservations(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 25)
	slot := seedSlot(t, db, baseDate.AddDate(0, 0, 1), 9, 5)

	created, err := BookReservations(db, enrollment.ID, []uuid.UUID{slot.ID}, student.UserID, false)
	require.NoError(t, err)
	require.Len(t, created, 1)

	var reloaded models.TimeSlot
	require.NoError(t, db.First(&reloaded, "id = ?", slot.ID).Error)
	assert.Equal(t, 1, reloaded.ReservedCount)
}

func TestBookReservationsSlotFull(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	slot := seedSlot(t, db, baseDate.AddDate(0, 0, 1), 9, 1)

	first := seedStudent(t, db, "A-I")
	firstEnrollment := seedHourlyEnrollment(t, db, first, 10, 25)
	_, err := BookReservations(db, firstEnrollment.ID, []uuid.UUID{slot.ID}, first.UserID, false)
	require.NoError(t, err)

	second := seedStudent(t, db, "A-I")
	secondEnrollment := seedHourlyEnrollment(t, db, second, 10, 25)
	_, err = BookReservations(db, secondEnrollment.ID, []uuid.UUID{slot.ID}, second.UserID, false)
	assert.ErrorIs(t, err, ErrSlotFull)

	// The failed booking must not leave a phantom claim behind.
	var reloaded models.TimeSlot
	require.NoError(t, db.First(&reloaded, "id = ?", slot.ID).Error)
	assert.Equal(t, 1, reloaded.ReservedCount)
}

func TestBookReservationsDuplicateSlotIDs(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 25)
	slot := seedSlot(t, db, baseDate.AddDate(0, 0, 1), 9, 5)

	created, err := BookReservations(db, enrollment.ID, []uuid.UUID{slot.ID, slot.ID}, student.UserID, false)
	require.NoError(t, err)
	assert.Len(t, created, 1)

	// One seat and one budget hour consumed, not two.
	var reloaded models.TimeSlot
	require.NoError(t, db.First(&reloaded, "id = ?", slot.ID).Error)
	assert.Equal(t, 1, reloaded.ReservedCount)

	state, err := GetAccountState(db, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.HoursReserved)
}

func TestBookReservationsBudget(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 2, 25)

	tomorrow := baseDate.AddDate(0, 0, 1)
	slots := []uuid.UUID{
		seedSlot(t, db, tomorrow, 9, 5).ID,
		seedSlot(t, db, tomorrow, 10, 5).ID,
		seedSlot(t, db, tomorrow, 11, 5).ID,
	}

	_, err := BookReservations(db, enrollment.ID, slots, student.UserID, false)
	assert.ErrorIs(t, err, ErrInsufficientHours)
}

func TestBookReservationsPendingHoldsBudget(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 2, 25)

	tomorrow := baseDate.AddDate(0, 0, 1)
	slotA := seedSlot(t, db, tomorrow, 9, 5)
	slotB := seedSlot(t, db, tomorrow, 10, 5)
	slotC := seedSlot(t, db, tomorrow, 11, 5)

	_, err := BookReservations(db, enrollment.ID, []uuid.UUID{slotA.ID, slotB.ID}, student.UserID, false)
	require.NoError(t, err)

	_, err = BookReservations(db, enrollment.ID, []uuid.UUID{slotC.ID}, student.UserID, false)
	assert.ErrorIs(t, err, ErrInsufficientHours)
}

func TestBookReservationsPastDeadline(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 25)
	slot := seedSlot(t, db, baseDate.AddDate(0, 0, 31), 9, 5)

	_, err := BookReservations(db, enrollment.ID, []uuid.UUID{slot.ID}, student.UserID, false)
	assert.ErrorIs(t, err, ErrSlotPastDeadline)
}

func TestBookReservationsExpiredEnrollment(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 25)
	slot := seedSlot(t, db, baseDate.AddDate(0, 0, 40), 9, 5)

	setNow(t, utils.At(baseDate.AddDate(0, 0, 35), 8, 0))
	_, err := BookReservations(db, enrollment.ID, []uuid.UUID{slot.ID}, student.UserID, false)
	assert.ErrorIs(t, err, ErrEnrollmentExpired)
}

func TestBookReservationsAdvanceRuleForAII(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-II")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 25)

	today := seedSlot(t, db, baseDate, 9, 5)
	tomorrow := seedSlot(t, db, baseDate.AddDate(0, 0, 1), 9, 5)

	_, err := BookReservations(db, enrollment.ID, []uuid.UUID{today.ID}, student.UserID, false)
	assert.ErrorIs(t, err, ErrAdvanceRequired)

	_, err = BookReservations(db, enrollment.ID, []uuid.UUID{tomorrow.ID}, student.UserID, false)
	assert.NoError(t, err)

	// The front desk can still squeeze an A-II student into today's schedule.
	_, err = BookReservations(db, enrollment.ID, []uuid.UUID{today.ID}, uuid.New(), true)
	assert.NoError(t, err)
}

func TestBookReservationsNotOwner(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 25)
	other := seedStudent(t, db, "A-I")
	slot := seedSlot(t, db, baseDate.AddDate(0, 0, 1), 9, 5)

	_, err := BookReservations(db, enrollment.ID, []uuid.UUID{slot.ID}, other.UserID, false)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestCancelReservationsReleasesSlot(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 25)
	slot := seedSlot(t, db, baseDate.AddDate(0, 0, 1), 9, 5)

	created, err := BookReservations(db, enrollment.ID, []uuid.UUID{slot.ID}, student.UserID, false)
	require.NoError(t, err)

	err = CancelReservations(db, enrollment.ID, []uuid.UUID{created[0].ID}, student.UserID, false)
	require.NoError(t, err)

	var reloaded models.TimeSlot
	require.NoError(t, db.First(&reloaded, "id = ?", slot.ID).Error)
	assert.Equal(t, 0, reloaded.ReservedCount)

	var remaining int64
	db.Model(&models.Reservation{}).Where("enrollment_id = ?", enrollment.ID).Count(&remaining)
	assert.Zero(t, remaining)
}

func TestCancelReservationsCooldown(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 25)

	tomorrow := baseDate.AddDate(0, 0, 1)
	slotA := seedSlot(t, db, tomorrow, 9, 5)
	slotB := seedSlot(t, db, tomorrow, 10, 5)
	created, err := BookReservations(db, enrollment.ID, []uuid.UUID{slotA.ID, slotB.ID}, student.UserID, false)
	require.NoError(t, err)

	require.NoError(t, CancelReservations(db, enrollment.ID, []uuid.UUID{created[0].ID}, student.UserID, false))

	setNow(t, utils.At(baseDate, 10, 0))
	err = CancelReservations(db, enrollment.ID, []uuid.UUID{created[1].ID}, student.UserID, false)
	assert.ErrorIs(t, err, ErrCooldownActive)

	// Admins are never throttled.
	require.NoError(t, CancelReservations(db, enrollment.ID, []uuid.UUID{created[1].ID}, uuid.New(), true))
}

func TestCancelReservationsCooldownExpires(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 25)

	tomorrow := baseDate.AddDate(0, 0, 2)
	slotA := seedSlot(t, db, tomorrow, 9, 5)
	slotB := seedSlot(t, db, tomorrow, 10, 5)
	created, err := BookReservations(db, enrollment.ID, []uuid.UUID{slotA.ID, slotB.ID}, student.UserID, false)
	require.NoError(t, err)

	require.NoError(t, CancelReservations(db, enrollment.ID, []uuid.UUID{created[0].ID}, student.UserID, false))

	setNow(t, utils.At(baseDate, 8, 0).Add(25*time.Hour))
	assert.NoError(t, CancelReservations(db, enrollment.ID, []uuid.UUID{created[1].ID}, student.UserID, false))
}

func TestCancelReservationsAttended(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 25)
	slot := seedSlot(t, db, baseDate, 9, 5)
	reservation := seedReservation(t, db, slot, enrollment)
	require.NoError(t, db.Create(&models.Attendance{
		ReservationID: reservation.ID, Attended: true, RecordedAt: utils.At(baseDate, 9, 5),
	}).Error)

	err := CancelReservations(db, enrollment.ID, []uuid.UUID{reservation.ID}, student.UserID, false)
	assert.ErrorIs(t, err, ErrReservationAttended)
}

func TestCancelReservationsForeignID(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 25)

	err := CancelReservations(db, enrollment.ID, []uuid.UUID{uuid.New()}, student.UserID, false)
	assert.ErrorIs(t, err, ErrReservationMissing)
}
