package domain

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")

	ErrUnknownIntent      = errors.New("unknown intent")
	ErrUnknownRequestType = errors.New("unknown request type")
	ErrMissingSlot        = errors.New("missing required slot")
	ErrBadDate            = errors.New("malformed date")
)
