package memory

import "time"

// Default capacities, matching the windows the assistant narrates over.
const (
	DefaultMaxMessages = 10
	DefaultRecordTTL   = 5 * time.Minute
	sceneHistorySize   = 5
)

// Config holds the memory store sizing knobs.
type Config struct {
	// MaxMessages bounds the conversation transcript. Oldest evicted first.
	MaxMessages int

	// RecordTTL is how long an object/text record survives past its last
	// sighting before being purged.
	RecordTTL time.Duration
}

func (c *Config) defaults() {
	if c.MaxMessages <= 0 {
		c.MaxMessages = DefaultMaxMessages
	}
	if c.RecordTTL <= 0 {
		c.RecordTTL = DefaultRecordTTL
	}
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source. Used by tests to drive TTL expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}
