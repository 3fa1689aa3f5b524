package notifications

import "fmt"

// Message bodies mirror what the front desk used to send by hand, so they
// stay in Spanish.

func EnrollmentWelcome(name string, totalHours int, totalCost float64) (string, string) {
	subject := "🚗 Bienvenido a la Escuela de Conducción"
	body := fmt.Sprintf(
		"<h1>¡Bienvenido, %s!</h1>"+
			"<p>Tu matrícula ha sido registrada: %d hora(s) de práctica por un total de S/. %.2f.</p>"+
			"<p>Recuerda que tienes 30 días para completar tus clases. ¡Te esperamos!</p>",
		name, totalHours, totalCost)
	return subject, body
}

func PaymentReminder(name string, pendingBalance float64) (string, string) {
	subject := "💰 Recordatorio de pago pendiente - Escuela de Conducción"
	body := fmt.Sprintf(
		"<p>Hola %s,</p>"+
			"<p>Ya iniciaste tus clases, pero aún tienes un saldo pendiente de S/. %.2f.</p>"+
			"<p>Te recordamos que el pago debe completarse antes de tu quinta clase.</p>",
		name, pendingBalance)
	return subject, body
}

func PaymentReceived(name string, amount, pendingBalance float64) (string, string) {
	subject := "✅ Pago registrado - Escuela de Conducción"
	body := fmt.Sprintf(
		"<p>Hola %s,</p>"+
			"<p>Hemos registrado tu pago de S/. %.2f. Tu saldo pendiente es de S/. %.2f.</p>",
		name, amount, pendingBalance)
	return subject, body
}

func CourseCompleted(name string) (string, string) {
	subject := "🎉 ¡Felicitaciones, completaste tu curso!"
	body := fmt.Sprintf(
		"<h1>¡Felicitaciones, %s!</h1>"+
			"<p>Has completado todas las horas de práctica de tu matrícula. "+
			"Pronto recibirás tu certificado de finalización.</p>",
		name)
	return subject, body
}

func ReservationReminder(name, date, timeRange string) (string, string) {
	subject := "📅 Recordatorio de clase - Escuela de Conducción"
	body := fmt.Sprintf(
		"<p>Hola %s,</p>"+
			"<p>Te recordamos tu clase de práctica de mañana %s, en el horario %s.</p>"+
			"<p>Por favor llega 10 minutos antes.</p>",
		name, date, timeRange)
	return subject, body
}
