package export

import "errors"

// ErrUnknownFormat is returned for a format name or extension that has no
// encoder.
var ErrUnknownFormat = errors.New("unknown export format")
