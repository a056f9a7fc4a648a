package repository

// DefaultNullTokens are the cell spellings read as absent values.
var DefaultNullTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a",
	"nan", "null",
}

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithDelimiter sets the field delimiter used for reading and writing.
func WithDelimiter(r rune) Option {
	return func(s *CSVStore) {
		if r != 0 {
			s.delimiter = r
		}
	}
}

// WithNullTokens replaces the set of spellings read as absent values.
func WithNullTokens(tokens []string) Option {
	return func(s *CSVStore) {
		if tokens == nil {
			return
		}
		s.nullTokens = make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			s.nullTokens[tok] = struct{}{}
		}
	}
}
