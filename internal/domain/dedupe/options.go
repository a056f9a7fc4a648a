package dedupe

type config struct {
	sizeHint int
}

// Option applies a configuration option to the deduper.
type Option func(*config)

// WithSizeHint presizes the key set for n keys.
func WithSizeHint(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.sizeHint = n
		}
	}
}
