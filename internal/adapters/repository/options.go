// Package repository defines the session dataset store interface and errors.
package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxSessions bounds the number of live non-default sessions.
func WithMaxSessions(limit int) Option {
	return func(s *MemoryStore) {
		if limit > 0 {
			s.maxSessions = limit
		}
	}
}

// WithDefaultSeed sets the seed used for the default dataset.
func WithDefaultSeed(seed int64) Option {
	return func(s *MemoryStore) {
		s.seedOverride = &seed
	}
}
