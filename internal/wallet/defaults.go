package wallet

import "time"

const (
	defaultMinConfirmations = 1

	defaultFetchWorkers = 8
	defaultBatchSize    = 50

	sleepDuration     = 5 * time.Second
	idleSleepDuration = 30 * time.Second

	snapshotBatcherCapacity      = 100
	snapshotBatcherFlushInterval = 10 * time.Second
	snapshotBatcherRPS           = 2
)
