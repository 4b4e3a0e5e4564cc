package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken возвращается при попытке зарегистрировать занятый email
	ErrEmailTaken = errors.New("email is already taken")

	// ErrLastAdmin возвращается при попытке удалить или понизить последнего администратора
	ErrLastAdmin = errors.New("cannot remove the last administrator")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
