package create_appointment

import (
	"io"
	"time"
)

// Receipt файл чека об оплате из формы
type Receipt struct {
	Filename string    // Исходное имя файла, по расширению определяется тип
	Size     int64     // Размер в байтах
	Body     io.Reader // Содержимое
}

// Request модель запроса на создание записи
type Request struct {
	FirstName         string   `validate:"required,max=100"`
	LastName          string   `validate:"required,max=100"`
	Email             string   `validate:"required,email,max=254"`
	PhoneNumber       string   `validate:"required"`       // ###-###-#### или 10 цифр
	AppointmentDate   string   `validate:"required"`       // YYYY-MM-DD
	AppointmentHour   int      `validate:"min=0,max=23"`   // Час по 24-часовой шкале
	AppointmentTypeID int64    `validate:"required,gt=0"`  // ID типа консультации
	BankAccountID     string   `validate:"omitempty,uuid"` // Счет, на который переведена оплата (опционально)
	Receipt           *Receipt `validate:"required"`       // Чек об оплате
}

// Response модель ответа с созданной записью
type Response struct {
	ID        string    // UUID записи
	ShortID   string    // Код для проверки статуса
	Status    string    // Статус (pending)
	Date      string    // Дата YYYY-MM-DD
	Hour      int       // Час
	CreatedAt time.Time // Время создания
}
