package availability

import "errors"

var (
	// ErrLoadRules возвращается, когда источник правил недоступен; предыдущий снимок сохраняется
	ErrLoadRules = errors.New("availability: failed to load rules")

	// ErrInvalidRule возвращается при некорректном ключе или часах правила
	ErrInvalidRule = errors.New("availability: invalid rule")

	// ErrEmptyRule возвращается при сохранении правила на дату без часов и без флага "весь день"
	ErrEmptyRule = errors.New("availability: specific-date rule must block at least one hour or the whole day")

	// ErrAllDayRule возвращается при переключении часа в правиле "весь день"
	ErrAllDayRule = errors.New("availability: the whole day is blocked, turn off all-day first")

	// ErrEditInProgress возвращается, пока предыдущее изменение правил не завершилось
	ErrEditInProgress = errors.New("availability: another rule change is in progress")

	// ErrSaveRule возвращается, когда хранилище отклонило изменение
	ErrSaveRule = errors.New("availability: failed to save rule")

	// ErrDateInPast возвращается для дат раньше сегодняшней
	ErrDateInPast = errors.New("availability: date is in the past")

	// ErrDayBlocked возвращается, когда день закрыт целиком
	ErrDayBlocked = errors.New("availability: day is fully blocked")

	// ErrHourBlocked возвращается, когда час закрыт правилом
	ErrHourBlocked = errors.New("availability: hour is blocked")

	// ErrHourTaken возвращается, когда час уже занят другой записью
	ErrHourTaken = errors.New("availability: hour is already booked")

	// ErrHourPassed возвращается, когда сегодняшний час уже начался или прошел
	ErrHourPassed = errors.New("availability: hour has already passed")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("availability: internal error")
)
