package services

import (
	"testing"

	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPaymentAccumulates(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 20)

	_, updated, err := RecordPayment(db, enrollment.ID, 80)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, updated.PaymentStatus)

	_, updated, err = RecordPayment(db, enrollment.ID, 120)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentComplete, updated.PaymentStatus)

	var reloaded models.Enrollment
	require.NoError(t, db.First(&reloaded, "id = ?", enrollment.ID).Error)
	assert.Equal(t, models.PaymentComplete, reloaded.PaymentStatus)

	var count int64
	db.Model(&models.Payment{}).Where("enrollment_id = ?", enrollment.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestRecordPaymentOverpayment(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	student := seedStudent(t, db, "A-I")
	enrollment := seedHourlyEnrollment(t, db, student, 10, 20)

	_, _, err := RecordPayment(db, enrollment.ID, 150)
	require.NoError(t, err)

	_, _, err = RecordPayment(db, enrollment.ID, 51)
	assert.ErrorIs(t, err, ErrOverpayment)

	// The rejected payment must not be persisted.
	var count int64
	db.Model(&models.Payment{}).Where("enrollment_id = ?", enrollment.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestListPaymentsFilterByEnrollment(t *testing.T) {
	db := setupDB(t)
	setNow(t, utils.At(baseDate, 8, 0))
	first := seedStudent(t, db, "A-I")
	firstEnrollment := seedHourlyEnrollment(t, db, first, 10, 20)
	second := seedStudent(t, db, "A-I")
	secondEnrollment := seedHourlyEnrollment(t, db, second, 10, 20)

	_, _, err := RecordPayment(db, firstEnrollment.ID, 50)
	require.NoError(t, err)
	_, _, err = RecordPayment(db, secondEnrollment.ID, 70)
	require.NoError(t, err)

	payments, err := ListPayments(db, &firstEnrollment.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, 50.0, payments[0].Amount)

	all, err := ListPayments(db, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
