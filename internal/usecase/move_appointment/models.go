package move_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID uuid.UUID // ID записи
	NewDate       string    // Новая дата YYYY-MM-DD
	NewHour       int       // Новый час
	AdminNote     *string   // Заметка администратора, пустая не заменяет текущую
}

// Response модель ответа с перенесенной записью
type Response struct {
	Appointment  *domain.Appointment // Запись после переноса
	PreviousDate string              // Дата до переноса
	PreviousHour int                 // Час до переноса
}
