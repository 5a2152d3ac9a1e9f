package bookingapi

import "errors"

var (
	// ErrUnauthorized возвращается при отсутствующем, неверном или истекшем токене
	ErrUnauthorized = errors.New("bookingapi client: unauthorized")

	// ErrRejected возвращается, когда сервер отклонил запрос как некорректный (4xx)
	ErrRejected = errors.New("bookingapi client: request rejected")

	// ErrConflict возвращается, когда сервер занят другим изменением правил
	ErrConflict = errors.New("bookingapi client: conflicting change in progress")

	// ErrUnavailable возвращается при недоступности сервера или открытом circuit breaker
	ErrUnavailable = errors.New("bookingapi client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервера
	ErrInvalidResponse = errors.New("bookingapi client: invalid response")

	// errNotFound ответ 404, наружу отдается только там, где он что-то значит
	errNotFound = errors.New("bookingapi client: not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingapi client: internal error")
)
