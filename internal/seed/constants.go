package seed

import "time"

const (
	workerChannelMultiplier = 2
	directoryPermission     = 0o750
	logFilePermission       = 0o600
	defaultTimeout          = 30 * time.Second
	topPerformers           = 10
)
