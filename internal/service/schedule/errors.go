package schedule

import "errors"

var (
	// ErrWorkBlockNotFound возвращается, когда рабочий блок не найден
	ErrWorkBlockNotFound = errors.New("work block not found")

	// ErrWorkBlockOverlap возвращается, когда новый блок пересекается с существующим
	ErrWorkBlockOverlap = errors.New("work block overlaps an existing block")

	// ErrWorkBlockInUse возвращается при попытке удалить блок, на который ссылаются бронирования
	ErrWorkBlockInUse = errors.New("work block is referenced by bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
