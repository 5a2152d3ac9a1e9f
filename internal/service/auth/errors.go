package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken возвращается, когда токен не прошел проверку
	ErrInvalidToken = errors.New("invalid or expired access token")

	// ErrAdminNotFound возвращается, когда администратор из токена больше не существует
	ErrAdminNotFound = errors.New("admin not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
