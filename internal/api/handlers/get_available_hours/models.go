package get_available_hours

import (
	"github.com/google/uuid"

	getAvailableHours "github.com/m04kA/visa-booking-service/internal/usecase/get_available_hours"
)

// AvailableHoursResponse HTTP response model
type AvailableHoursResponse struct {
	Date           string `json:"date"`
	AvailableHours []int  `json:"availableHours"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(date string, exclude *uuid.UUID) *getAvailableHours.Request {
	return &getAvailableHours.Request{
		Date:    date,
		Exclude: exclude,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableHours.Response) *AvailableHoursResponse {
	hours := append(make([]int, 0, len(resp.AvailableHours)), resp.AvailableHours...)
	return &AvailableHoursResponse{
		Date:           resp.Date,
		AvailableHours: hours,
	}
}
