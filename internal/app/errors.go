package service

import "errors"

var (
	// ErrStageFailed wraps any error that aborted a cleaning run. The wrapped
	// message names the stage.
	ErrStageFailed = errors.New("pipeline stage failed")
	// ErrReport is returned when the persisted output cannot be re-read.
	ErrReport = errors.New("null report failed")
)
