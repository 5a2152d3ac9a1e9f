package get_available_hours

import "github.com/google/uuid"

// Request модель запроса свободных часов
type Request struct {
	Date    string     // Дата в формате YYYY-MM-DD
	Exclude *uuid.UUID // Запись, чей час не считается занятым (диалог переноса)
}

// Response модель ответа со свободными часами
type Response struct {
	Date           string // Дата в формате YYYY-MM-DD
	AvailableHours []int  // Свободные часы по 24-часовой шкале, по возрастанию
}
