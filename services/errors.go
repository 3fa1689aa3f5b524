package services

import "errors"

// Business-rule violations surfaced to API callers. Messages are in Spanish
// because that is what the school's staff and students read; handlers map
// these onto the {"success": false, "mensaje": ...} envelope.
var (
	ErrStudentInactive    = errors.New("el alumno está inactivo")
	ErrEnrollmentActive   = errors.New("el alumno ya tiene una matrícula activa")
	ErrPackageRequired    = errors.New("la matrícula por paquete requiere un paquete válido")
	ErrInvalidHourlyTerms = errors.New("la matrícula por horas requiere horas y tarifa positivas")

	ErrEnrollmentExpired   = errors.New("la matrícula ha vencido")
	ErrEnrollmentCompleted = errors.New("el alumno ya completó todas sus horas de la matrícula")
	ErrInsufficientHours   = errors.New("no hay suficientes horas disponibles")
	ErrSlotFull            = errors.New("el bloque está lleno")
	ErrSlotPastDeadline    = errors.New("el bloque excede la fecha límite de la matrícula")
	ErrAdvanceRequired     = errors.New("alumnos A-II deben reservar con 1 día de anticipación")

	ErrNotOwner            = errors.New("la matrícula no pertenece al usuario")
	ErrCooldownActive      = errors.New("solo puedes modificar reservas cada 24 horas")
	ErrReservationAttended = errors.New("no se puede cancelar una reserva con asistencia registrada")
	ErrReservationMissing  = errors.New("reservas no encontradas")

	ErrResourceRequired       = errors.New("se requiere instructor y auto para registrar una asistencia")
	ErrDuplicateAttendance    = errors.New("ya existe un registro de asistencia para esta reserva")
	ErrOutsideToleranceWindow = errors.New("la asistencia solo puede registrarse el día del bloque, hasta 15 minutos después del inicio")
	ErrInstructorConflict     = errors.New("el instructor ya tiene una clase programada en ese horario")
	ErrVehicleConflict        = errors.New("el auto ya está asignado a otra clase en ese horario")
	ErrHoursExceeded          = errors.New("el alumno ya completó las horas de su contrato")
	ErrPaymentRequired        = errors.New("el alumno debe completar el pago antes de tomar la quinta clase")

	ErrOverpayment = errors.New("el monto excede el saldo pendiente de la matrícula")
)

// IsBusinessError reports whether err is a rule violation rather than an
// infrastructure failure, so handlers can choose between 4xx and 500.
func IsBusinessError(err error) bool {
	for _, e := range []error{
		ErrStudentInactive, ErrEnrollmentActive, ErrPackageRequired, ErrInvalidHourlyTerms,
		ErrEnrollmentExpired, ErrEnrollmentCompleted, ErrInsufficientHours, ErrSlotFull,
		ErrSlotPastDeadline, ErrAdvanceRequired, ErrNotOwner, ErrCooldownActive,
		ErrReservationAttended, ErrReservationMissing, ErrResourceRequired, ErrDuplicateAttendance,
		ErrOutsideToleranceWindow, ErrInstructorConflict, ErrVehicleConflict,
		ErrHoursExceeded, ErrPaymentRequired, ErrOverpayment,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
