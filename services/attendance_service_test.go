package services

import (
	"testing"

	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type attendanceFixture struct {
	student     models.Student
	enrollment  models.Enrollment
	slot        models.TimeSlot
	reservation models.Reservation
	instructor  models.Instructor
	vehicle     models.Vehicle
}

// newAttendanceFixture leaves the clock at the slot's start time, inside the
// recording window.
func newAttendanceFixture(t *testing.T, db *gorm.DB, hours int) attendanceFixture {
	t.Helper()
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, hours, 20)
	slot := seedSlot(t, db, baseDate, 9, 5)
	reservation := seedReservation(t, db, slot, enrollment)
	setNow(t, utils.At(baseDate, 9, 0))

	return attendanceFixture{
		student:     student,
		enrollment:  enrollment,
		slot:        slot,
		reservation: reservation,
		instructor:  seedInstructor(t, db),
		vehicle:     seedVehicle(t, db),
	}
}

func TestRecordAttendanceIssuesTicket(t *testing.T) {
	db := setupDB(t)
	fx := newAttendanceFixture(t, db, 10)

	result, err := RecordAttendance(db, RecordAttendanceInput{
		ReservationID: fx.reservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &fx.vehicle.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, result.ClassRecord)
	assert.Equal(t, 1, result.ClassRecord.ClassNumber)
	assert.Equal(t, fx.instructor.ID, result.ClassRecord.InstructorID)
	assert.Equal(t, fx.vehicle.ID, result.ClassRecord.VehicleID)
	assert.Equal(t, 1, result.Enrollment.HoursCompleted)
	assert.Equal(t, models.ClassesInProgress, result.Enrollment.ClassStatus)
	assert.False(t, result.JustFinished)
}

func TestRecordAttendanceDuplicate(t *testing.T) {
	db := setupDB(t)
	fx := newAttendanceFixture(t, db, 10)

	in := RecordAttendanceInput{
		ReservationID: fx.reservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &fx.vehicle.ID,
	}
	_, err := RecordAttendance(db, in)
	require.NoError(t, err)

	_, err = RecordAttendance(db, in)
	assert.ErrorIs(t, err, ErrDuplicateAttendance)
}

func TestRecordAttendanceOutsideWindow(t *testing.T) {
	db := setupDB(t)
	fx := newAttendanceFixture(t, db, 10)
	in := RecordAttendanceInput{
		ReservationID: fx.reservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &fx.vehicle.ID,
	}

	// 16 minutes past the slot start.
	setNow(t, utils.At(baseDate, 9, 16))
	_, err := RecordAttendance(db, in)
	assert.ErrorIs(t, err, ErrOutsideToleranceWindow)

	// The day after, even at the right hour.
	setNow(t, utils.At(baseDate.AddDate(0, 0, 1), 9, 0))
	_, err = RecordAttendance(db, in)
	assert.ErrorIs(t, err, ErrOutsideToleranceWindow)

	// The edge of the window is still valid.
	setNow(t, utils.At(baseDate, 9, 15))
	_, err = RecordAttendance(db, in)
	assert.NoError(t, err)
}

func TestRecordAttendanceNoShowConsumesHour(t *testing.T) {
	db := setupDB(t)
	fx := newAttendanceFixture(t, db, 10)

	result, err := RecordAttendance(db, RecordAttendanceInput{
		ReservationID: fx.reservation.ID,
		Attended:      false,
	})
	require.NoError(t, err)

	assert.Nil(t, result.ClassRecord)
	assert.Equal(t, 1, result.Enrollment.HoursCompleted)
	assert.Equal(t, models.ClassesPending, result.Enrollment.ClassStatus)

	var tickets int64
	db.Model(&models.ClassRecord{}).Count(&tickets)
	assert.Zero(t, tickets)
}

func TestRecordAttendanceRequiresResources(t *testing.T) {
	db := setupDB(t)
	fx := newAttendanceFixture(t, db, 10)

	_, err := RecordAttendance(db, RecordAttendanceInput{
		ReservationID: fx.reservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
	})
	assert.ErrorIs(t, err, ErrResourceRequired)
}

func TestRecordAttendanceResourceConflicts(t *testing.T) {
	db := setupDB(t)
	fx := newAttendanceFixture(t, db, 10)

	_, err := RecordAttendance(db, RecordAttendanceInput{
		ReservationID: fx.reservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &fx.vehicle.ID,
	})
	require.NoError(t, err)

	// A second student in the same block cannot get the same instructor or
	// the same car.
	other := seedStudent(t, db, "A-I")
	otherEnrollment := seedHourlyEnrollment(t, db, other, 10, 20)
	otherReservation := seedReservation(t, db, fx.slot, otherEnrollment)
	freeInstructor := seedInstructor(t, db)
	freeVehicle := seedVehicle(t, db)

	_, err = RecordAttendance(db, RecordAttendanceInput{
		ReservationID: otherReservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &freeVehicle.ID,
	})
	assert.ErrorIs(t, err, ErrInstructorConflict)

	_, err = RecordAttendance(db, RecordAttendanceInput{
		ReservationID: otherReservation.ID,
		Attended:      true,
		InstructorID:  &freeInstructor.ID,
		VehicleID:     &fx.vehicle.ID,
	})
	assert.ErrorIs(t, err, ErrVehicleConflict)

	_, err = RecordAttendance(db, RecordAttendanceInput{
		ReservationID: otherReservation.ID,
		Attended:      true,
		InstructorID:  &freeInstructor.ID,
		VehicleID:     &freeVehicle.ID,
	})
	assert.NoError(t, err)
}

func TestRecordAttendanceBackToBackSlotsDoNotConflict(t *testing.T) {
	db := setupDB(t)
	fx := newAttendanceFixture(t, db, 10)

	_, err := RecordAttendance(db, RecordAttendanceInput{
		ReservationID: fx.reservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &fx.vehicle.ID,
	})
	require.NoError(t, err)

	// Same instructor and car in the next hour block is fine.
	nextSlot := seedSlot(t, db, baseDate, 10, 5)
	nextReservation := seedReservation(t, db, nextSlot, fx.enrollment)
	setNow(t, utils.At(baseDate, 10, 0))

	_, err = RecordAttendance(db, RecordAttendanceInput{
		ReservationID: nextReservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &fx.vehicle.ID,
	})
	assert.NoError(t, err)
}

func TestListClassRecordsByInstructor(t *testing.T) {
	db := setupDB(t)
	fx := newAttendanceFixture(t, db, 10)

	_, err := RecordAttendance(db, RecordAttendanceInput{
		ReservationID: fx.reservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &fx.vehicle.ID,
	})
	require.NoError(t, err)

	other := seedStudent(t, db, "A-I")
	otherEnrollment := seedHourlyEnrollment(t, db, other, 10, 20)
	otherReservation := seedReservation(t, db, fx.slot, otherEnrollment)
	otherInstructor := seedInstructor(t, db)
	otherVehicle := seedVehicle(t, db)
	_, err = RecordAttendance(db, RecordAttendanceInput{
		ReservationID: otherReservation.ID,
		Attended:      true,
		InstructorID:  &otherInstructor.ID,
		VehicleID:     &otherVehicle.ID,
	})
	require.NoError(t, err)

	all, err := ListClassRecords(db, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := ListClassRecords(db, &fx.instructor.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, fx.instructor.ID, mine[0].InstructorID)
	assert.Equal(t, fx.student.ID, mine[0].Attendance.Reservation.Enrollment.StudentID)
}

func TestRecordAttendancePaymentGate(t *testing.T) {
	db := setupDB(t)
	fx := newAttendanceFixture(t, db, 10)

	require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", fx.enrollment.ID).
		Updates(map[string]interface{}{
			"hours_completed": 4,
			"class_status":    models.ClassesInProgress,
		}).Error)

	in := RecordAttendanceInput{
		ReservationID: fx.reservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &fx.vehicle.ID,
	}
	_, err := RecordAttendance(db, in)
	assert.ErrorIs(t, err, ErrPaymentRequired)

	_, _, err = RecordPayment(db, fx.enrollment.ID, 200)
	require.NoError(t, err)

	result, err := RecordAttendance(db, in)
	require.NoError(t, err)
	assert.Equal(t, 5, result.ClassRecord.ClassNumber)
}

func TestRecordAttendanceHoursExceeded(t *testing.T) {
	db := setupDB(t)
	fx := newAttendanceFixture(t, db, 10)

	require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", fx.enrollment.ID).
		Updates(map[string]interface{}{
			"hours_completed": 10,
			"class_status":    models.ClassesCompleted,
		}).Error)

	_, err := RecordAttendance(db, RecordAttendanceInput{
		ReservationID: fx.reservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &fx.vehicle.ID,
	})
	assert.ErrorIs(t, err, ErrHoursExceeded)
}

func TestRecordAttendanceExpiredEnrollment(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 20)

	lateDate := baseDate.AddDate(0, 0, 35)
	slot := seedSlot(t, db, lateDate, 9, 5)
	reservation := seedReservation(t, db, slot, enrollment)
	instructor := seedInstructor(t, db)
	vehicle := seedVehicle(t, db)

	setNow(t, utils.At(lateDate, 9, 0))
	_, err := RecordAttendance(db, RecordAttendanceInput{
		ReservationID: reservation.ID,
		Attended:      true,
		InstructorID:  &instructor.ID,
		VehicleID:     &vehicle.ID,
	})
	assert.ErrorIs(t, err, ErrEnrollmentExpired)
}

func TestRecordAttendancePaymentReminder(t *testing.T) {
	db := setupDB(t)
	fx := newAttendanceFixture(t, db, 10)

	require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", fx.enrollment.ID).
		Updates(map[string]interface{}{
			"hours_completed": 2,
			"class_status":    models.ClassesInProgress,
		}).Error)
	require.NoError(t, db.Create(&models.Payment{EnrollmentID: fx.enrollment.ID, Amount: 50}).Error)

	result, err := RecordAttendance(db, RecordAttendanceInput{
		ReservationID: fx.reservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &fx.vehicle.ID,
	})
	require.NoError(t, err)

	assert.True(t, result.RemindPay)
	assert.Equal(t, 150.0, result.PaymentDue)
}

func TestRecordAttendanceCompletesCourse(t *testing.T) {
	db := setupDB(t)
	fx := newAttendanceFixture(t, db, 2)

	result, err := RecordAttendance(db, RecordAttendanceInput{
		ReservationID: fx.reservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &fx.vehicle.ID,
	})
	require.NoError(t, err)
	assert.False(t, result.JustFinished)

	nextSlot := seedSlot(t, db, baseDate, 10, 5)
	nextReservation := seedReservation(t, db, nextSlot, fx.enrollment)
	setNow(t, utils.At(baseDate, 10, 0))

	result, err = RecordAttendance(db, RecordAttendanceInput{
		ReservationID: nextReservation.ID,
		Attended:      true,
		InstructorID:  &fx.instructor.ID,
		VehicleID:     &fx.vehicle.ID,
	})
	require.NoError(t, err)

	assert.True(t, result.JustFinished)
	assert.Equal(t, models.ClassesCompleted, result.Enrollment.ClassStatus)
	assert.Equal(t, 2, result.Enrollment.HoursCompleted)
}
