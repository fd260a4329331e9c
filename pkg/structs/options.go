package structs

import (
	"time"
)

// Options passed to the dispatch service on creation. These are the
// deployment-tunable knobs: none of them are protocol invariants.
type Options struct {
	// HeartbeatTimeout is how long a PROCESSING task may go without a
	// progress report before its lease is treated as abandoned.
	HeartbeatTimeout time.Duration

	// ReapFrequency is how often abandoned leases are looked for.
	// 0 disables background routines entirely (client mode).
	ReapFrequency time.Duration

	// DebounceWindow coalesces availability signals per worker.
	DebounceWindow time.Duration

	// DefaultMaxAttempts applies to tasks created without one.
	DefaultMaxAttempts int64

	// Retention is how long finished tasks are kept; RetentionSchedule is
	// the cron expression of the cleanup sweep. Retention 0 keeps forever.
	Retention         time.Duration
	RetentionSchedule string
}

// OptionsClientDefault runs a dispatch service with no background routines.
// Intended for callers that only want to serve or consume the API.
func OptionsClientDefault() *Options {
	return &Options{
		HeartbeatTimeout:   2 * time.Minute,
		DebounceWindow:     500 * time.Millisecond,
		DefaultMaxAttempts: 3,
	}
}

// OptionsServerDefault runs the full authority: lease reaping and retention.
func OptionsServerDefault() *Options {
	return &Options{
		HeartbeatTimeout:   2 * time.Minute,
		ReapFrequency:      30 * time.Second,
		DebounceWindow:     500 * time.Millisecond,
		DefaultMaxAttempts: 3,
		Retention:          30 * 24 * time.Hour,
		RetentionSchedule:  "13 4 * * *",
	}
}
