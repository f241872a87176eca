package module

import (
	"time"

	"devstreams/internal/platform/config"
)

// Options holds configuration settings for the journal module
type Options struct {
	Enabled    bool
	BatchSize  int
	FlushEvery time.Duration
	Buffer     int
}

// FromConfig reads CORE_JOURNAL_* values
func FromConfig(cfg config.Conf) Options {
	jc := cfg.Prefix("CORE_JOURNAL_")
	return Options{
		Enabled:    jc.MayBool("ENABLED", false),
		BatchSize:  jc.MayInt("BATCH_SIZE", 100),
		FlushEvery: jc.MayDuration("FLUSH_EVERY", 2*time.Second),
		Buffer:     jc.MayInt("BUFFER", 1024),
	}
}
