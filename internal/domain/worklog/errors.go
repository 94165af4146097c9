package worklog

import "errors"

var (
	ErrInvalidEntry   = errors.New("invalid work entry")
	ErrInvalidProject = errors.New("invalid project")
	ErrUnknownPayType = errors.New("unknown pay type")
)
