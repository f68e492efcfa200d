package repository

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithKeyPrefix namespaces the stored keys, e.g. "podium:".
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}
