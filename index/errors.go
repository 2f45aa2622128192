package index

import "errors"

// ErrUnsupported is returned by Build for column types that have no index.
var ErrUnsupported = errors.New("index: unsupported column type")
