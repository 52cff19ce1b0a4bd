package booking

import "github.com/m04kA/SMC-TimeslotService/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов (*sql.DB, *sql.Tx или обёртка с метриками)
type DBExecutor = dbmetrics.DBExecutor
