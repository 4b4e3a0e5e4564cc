package workblock

import "errors"

var (
	// ErrWorkBlockNotFound возвращается, когда рабочий блок не найден
	ErrWorkBlockNotFound = errors.New("workblock.repository: work block not found")

	// ErrWorkBlockInUse возвращается при попытке удалить блок, на который ссылаются бронирования
	ErrWorkBlockInUse = errors.New("workblock.repository: work block is referenced by bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("workblock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("workblock.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("workblock.repository: failed to scan row")
)
