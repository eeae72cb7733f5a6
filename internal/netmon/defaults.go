package netmon

import "time"

const (
	defaultPollInterval = 5 * time.Second

	// requestBatchLimit bounds how many successor blocks one locator request
	// delivers; the node re-requests from its new tip to continue.
	requestBatchLimit = 128

	fetchWorkerCount = 8

	// disconnectThreshold is the number of consecutive poll failures before a
	// disconnect event is published.
	disconnectThreshold = 3

	rpcRatePerSecond = 50
)
