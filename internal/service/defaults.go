package service

import "time"

const (
	txBatchCapacity      = 1000
	txBatchFlushInterval = time.Second
	txBatchRPS           = 20
)
