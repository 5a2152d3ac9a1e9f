package catalog

import "errors"

var (
	// ErrAppointmentTypeNotFound возвращается, когда тип консультации не найден
	ErrAppointmentTypeNotFound = errors.New("appointment type not found")

	// ErrDuplicateName возвращается при создании типа с существующим именем
	ErrDuplicateName = errors.New("appointment type with this name already exists")

	// ErrBankAccountNotFound возвращается, когда банковский счет не найден
	ErrBankAccountNotFound = errors.New("bank account not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
