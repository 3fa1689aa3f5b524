package handlers

import (
	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/utils"
	"github.com/gofiber/fiber/v2"
)

// Read-only projections for the admin dashboard. No invariants live here;
// everything is derived from the same store the core writes to.

func GetDashboard(c *fiber.Ctx) error {
	var activeStudents, activeEnrollments, pendingPayments, todayReservations int64

	database.DB.Model(&models.Student{}).Where("is_active = ?", true).Count(&activeStudents)
	database.DB.Model(&models.Enrollment{}).
		Where("class_status IN ?", []string{models.ClassesPending, models.ClassesInProgress}).
		Count(&activeEnrollments)
	database.DB.Model(&models.Enrollment{}).
		Where("payment_status = ? AND class_status <> ?", models.PaymentPending, models.ClassesCompleted).
		Count(&pendingPayments)
	database.DB.Model(&models.Reservation{}).
		Joins("JOIN time_slots ON time_slots.id = reservations.time_slot_id").
		Where("time_slots.date = ?", utils.Today()).
		Count(&todayReservations)

	var monthIncome float64
	monthStart := utils.Today().AddDate(0, 0, -utils.Today().Day()+1)
	database.DB.Model(&models.Payment{}).
		Where("created_at >= ?", monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&monthIncome)

	return c.JSON(fiber.Map{
		"alumnos_activos":     activeStudents,
		"matriculas_activas":  activeEnrollments,
		"pagos_pendientes":    pendingPayments,
		"reservas_hoy":        todayReservations,
		"ingresos_mes_actual": monthIncome,
	})
}

func GetAttendanceReport(c *fiber.Ctx) error {
	var total, attended int64
	database.DB.Model(&models.Attendance{}).Count(&total)
	database.DB.Model(&models.Attendance{}).Where("attended = ?", true).Count(&attended)

	rate := 0.0
	if total > 0 {
		rate = float64(attended) / float64(total)
	}

	return c.JSON(fiber.Map{
		"total_registros": total,
		"asistencias":     attended,
		"inasistencias":   total - attended,
		"tasa_asistencia": rate,
	})
}

func GetIncomeReport(c *fiber.Ctx) error {
	type monthlyIncome struct {
		Month string  `json:"mes"`
		Total float64 `json:"total"`
	}

	var rows []monthlyIncome
	database.DB.Model(&models.Payment{}).
		Select("to_char(created_at, 'YYYY-MM') as month, SUM(amount) as total").
		Group("month").Order("month desc").Limit(12).
		Scan(&rows)

	return c.JSON(rows)
}
