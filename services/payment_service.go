package services

import (
	"github.com/escuelamanejo/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordPayment appends a payment to an enrollment. Overpaying is rejected;
// when the accumulated total reaches the enrollment cost the payment status
// flips to complete. Payments are never edited or deleted.
func RecordPayment(db *gorm.DB, enrollmentID uuid.UUID, amount float64) (*models.Payment, *models.Enrollment, error) {
	var payment models.Payment
	var enrollment models.Enrollment

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Student").First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
			return err
		}

		var paid float64
		if err := tx.Model(&models.Payment{}).
			Where("enrollment_id = ?", enrollment.ID).
			Select("COALESCE(SUM(amount), 0)").Scan(&paid).Error; err != nil {
			return err
		}

		if amount > enrollment.TotalCost-paid {
			return ErrOverpayment
		}

		payment = models.Payment{
			EnrollmentID: enrollment.ID,
			Amount:       amount,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if paid+amount >= enrollment.TotalCost && enrollment.PaymentStatus != models.PaymentComplete {
			enrollment.PaymentStatus = models.PaymentComplete
			if err := tx.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).
				Update("payment_status", models.PaymentComplete).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &payment, &enrollment, nil
}

func ListPayments(db *gorm.DB, enrollmentID *uuid.UUID) ([]models.Payment, error) {
	query := db.Order("created_at desc")
	if enrollmentID != nil {
		query = query.Where("enrollment_id = ?", *enrollmentID)
	}
	var payments []models.Payment
	err := query.Find(&payments).Error
	return payments, err
}
