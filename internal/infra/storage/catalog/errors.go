package catalog

import "errors"

var (
	// ErrAppointmentTypeNotFound возвращается, когда тип консультации не найден
	ErrAppointmentTypeNotFound = errors.New("catalog.repository: appointment type not found")

	// ErrDuplicateName возвращается, когда тип с таким названием уже существует
	ErrDuplicateName = errors.New("catalog.repository: appointment type name already exists")

	// ErrBankAccountNotFound возвращается, когда банковский счет не найден
	ErrBankAccountNotFound = errors.New("catalog.repository: bank account not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
