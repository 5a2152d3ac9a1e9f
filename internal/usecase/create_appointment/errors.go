package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrAppointmentTypeNotFound возвращается, когда тип консультации не найден
	ErrAppointmentTypeNotFound = errors.New("create_appointment: appointment type not found")

	// ErrAppointmentTypeHidden возвращается, когда тип консультации скрыт от клиентов
	ErrAppointmentTypeHidden = errors.New("create_appointment: appointment type is not available")

	// ErrBankAccountNotFound возвращается, когда банковский счет не найден или отключен
	ErrBankAccountNotFound = errors.New("create_appointment: bank account not found")

	// ErrReceiptRequired возвращается, когда чек не приложен
	ErrReceiptRequired = errors.New("create_appointment: receipt file is required")

	// ErrUnsupportedReceipt возвращается для файлов кроме JPG, PNG и PDF
	ErrUnsupportedReceipt = errors.New("create_appointment: invalid file type, only JPG, PNG and PDF allowed")

	// ErrReceiptTooLarge возвращается, когда чек больше допустимого размера
	ErrReceiptTooLarge = errors.New("create_appointment: receipt file is too large")

	// ErrDateInPast возвращается для дат раньше сегодняшней
	ErrDateInPast = errors.New("create_appointment: date is in the past")

	// ErrDayBlocked возвращается, когда день закрыт целиком
	ErrDayBlocked = errors.New("create_appointment: this date is blocked")

	// ErrHourBlocked возвращается, когда час закрыт правилом доступности
	ErrHourBlocked = errors.New("create_appointment: this time slot is blocked")

	// ErrHourPassed возвращается, когда сегодняшний час уже прошел
	ErrHourPassed = errors.New("create_appointment: this time slot has already passed")

	// ErrSlotTaken возвращается, когда час уже занят другой записью
	ErrSlotTaken = errors.New("create_appointment: time slot not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
