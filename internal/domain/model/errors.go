package model

import "errors"

// Sentinel kinds for table errors.
var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrLengthMismatch  = errors.New("column length mismatch")
	ErrDuplicateColumn = errors.New("duplicate column")
)
