package filter

import "errors"

var (
	ErrInvalidArgument = errors.New("filter: invalid argument")
	ErrUnknownHash     = errors.New("filter: unknown hash function")
)
