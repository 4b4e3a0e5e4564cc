package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrNameTaken возвращается при попытке создать услугу с занятым именем
	ErrNameTaken = errors.New("service name is already taken")

	// ErrServiceInUse возвращается при попытке удалить услугу с будущими бронированиями
	ErrServiceInUse = errors.New("service has future bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
