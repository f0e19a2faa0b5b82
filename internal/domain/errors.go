package domain

import "errors"

var (
	ErrNotAuthenticated   = errors.New("no authenticated user")
	ErrPathNotFound       = errors.New("path not found")
	ErrInvalidSlotTime    = errors.New("invalid slot time, expected zero-padded HH:MM")
	ErrInvalidSlotData    = errors.New("invalid slot data")
	ErrReservedSlotKey    = errors.New("slot id is reserved")
	ErrQuantityOutOfRange = errors.New("quantity out of range")
	ErrNegativeDuration   = errors.New("break duration cannot be negative")
	ErrDistributorMissing = errors.New("distributor does not exist")
	ErrAlreadyAssigned    = errors.New("distributor already assigned")
)
