package store

import "errors"

var ErrUnknownStore = errors.New("unknown store kind")
