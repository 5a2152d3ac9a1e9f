package move_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("move_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("move_appointment: appointment not found")

	// ErrAlreadyDone возвращается при попытке перенести проведенную запись
	ErrAlreadyDone = errors.New("move_appointment: cannot move completed appointment")

	// ErrDateInPast возвращается для дат раньше сегодняшней
	ErrDateInPast = errors.New("move_appointment: date is in the past")

	// ErrDayBlocked возвращается, когда день закрыт целиком
	ErrDayBlocked = errors.New("move_appointment: selected date is blocked")

	// ErrHourBlocked возвращается, когда час закрыт правилом доступности
	ErrHourBlocked = errors.New("move_appointment: selected hour is not available")

	// ErrHourPassed возвращается, когда сегодняшний час уже прошел
	ErrHourPassed = errors.New("move_appointment: cannot move to a past hour")

	// ErrSlotTaken возвращается, когда час занят другой записью
	ErrSlotTaken = errors.New("move_appointment: time slot already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_appointment: internal error")
)
