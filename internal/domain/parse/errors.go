package parse

import "errors"

// ErrUnparseable reports a value that cannot be read as the requested type.
// Pipeline stages turn it into an absent cell.
var ErrUnparseable = errors.New("unparseable value")
