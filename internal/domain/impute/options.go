package impute

import "github.com/okian/fifaclean/internal/domain/model"

// Default policy values.
const (
	DefaultWorkRateFallback = "Medium/Medium"
	DefaultGoalkeeperMarker = "gk"
)

// Option applies a configuration option to the Imputer.
type Option func(*Imputer)

// WithGoalkeeperPrefix sets the column-name prefix of goalkeeper attributes.
func WithGoalkeeperPrefix(prefix string) Option {
	return func(im *Imputer) {
		if prefix != "" {
			im.goalkeeperPrefix = prefix
		}
	}
}

// WithGoalkeeperMarker sets the substring of preferred_positions that marks
// a goalkeeper. Matching is case-insensitive.
func WithGoalkeeperMarker(marker string) Option {
	return func(im *Imputer) {
		if marker != "" {
			im.goalkeeperMarker = marker
		}
	}
}

// WithWorkRateFallback sets the work rate given to players that never
// report one.
func WithWorkRateFallback(value string) Option {
	return func(im *Imputer) {
		if value != "" {
			im.workRateFallback = value
		}
	}
}

func defaults() *Imputer {
	return &Imputer{
		goalkeeperPrefix: model.GoalkeeperPrefix,
		goalkeeperMarker: DefaultGoalkeeperMarker,
		workRateFallback: DefaultWorkRateFallback,
	}
}
