package util

import "github.com/pkg/errors"

// ErrFormat is returned for malformed hex, address or amount input.
var ErrFormat = errors.New("invalid format")
