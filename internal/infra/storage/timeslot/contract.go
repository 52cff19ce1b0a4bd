package timeslot

import "github.com/m04kA/SMC-TimeslotService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
