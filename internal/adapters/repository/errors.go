package repository

import "errors"

// Sentinel kinds for table storage errors.
var (
	ErrRead       = errors.New("read table failed")
	ErrWrite      = errors.New("write table failed")
	ErrEmptyInput = errors.New("input has no header row")
	ErrMalformed  = errors.New("malformed record")
)
