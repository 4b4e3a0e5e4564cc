package booking

import "github.com/agendahub/AB-BookingService/pkg/txmanager"

// DBExecutor общий интерфейс выполнения запросов (*sql.DB или *sql.Tx)
type DBExecutor = txmanager.DBExecutor
