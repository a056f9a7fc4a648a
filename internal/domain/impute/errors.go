package impute

import "errors"

// ErrNotNumeric is returned when a numeric stage meets a non-numeric column.
var ErrNotNumeric = errors.New("column is not numeric")
