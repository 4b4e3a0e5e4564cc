package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном email или пароле
	// Причина намеренно не уточняется
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserInactive возвращается при попытке входа деактивированного пользователя
	ErrUserInactive = errors.New("user account is deactivated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
