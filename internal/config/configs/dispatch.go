package configs

import "time"

// Dispatch tunes the dispatch pipeline and the scheduler poll.
type Dispatch struct {
	// ChunkSize bounds how many recipients one transport call covers.
	ChunkSize int `env:"CHUNK_SIZE" envDefault:"100"`
	// LogBatchSize bounds one delivery-log batch write, matching typical
	// bulk-write limits of the storage layer.
	LogBatchSize int `env:"LOG_BATCH_SIZE" envDefault:"25"`
	// ChunkTimeout caps one transport call. A timeout is a chunk failure,
	// not a run-level abort.
	ChunkTimeout time.Duration `env:"CHUNK_TIMEOUT" envDefault:"30s"`
	// SchedulerInterval is how often the scheduler polls for due campaigns.
	SchedulerInterval time.Duration `env:"SCHEDULER_INTERVAL" envDefault:"1m"`
	// SchedulerWindow lets a poll pick up campaigns due slightly in the
	// future so one-minute polling does not skew sends late.
	SchedulerWindow time.Duration `env:"SCHEDULER_WINDOW" envDefault:"1m"`
}
