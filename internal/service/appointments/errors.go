package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrReceiptNotFound возвращается, когда чек записи отсутствует в хранилище
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrAlreadyDone возвращается при попытке изменить завершенную запись
	ErrAlreadyDone = errors.New("appointment is already done")

	// ErrNotApproved возвращается при попытке завершить неподтвержденную запись
	ErrNotApproved = errors.New("only approved appointments can be marked as done")

	// ErrSlotTaken возвращается, когда слот отклоненной записи уже занят другой записью
	ErrSlotTaken = errors.New("appointment slot is already taken")

	// ErrReasonRequired возвращается при отклонении без причины
	ErrReasonRequired = errors.New("rejection reason is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
