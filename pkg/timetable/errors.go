package timetable

import "errors"

var (
	ErrUnknownConnection = errors.New("no edge connects the vertex pair")
	ErrUnknownTimestamp  = errors.New("no predicted durations for timestamp")
	ErrInvalidTimestamp  = errors.New("timestamp has no hour component")
	ErrMisalignedTable   = errors.New("per-edge table does not match the number of topology edges")
	ErrMalformedRow      = errors.New("malformed row")
	ErrDuplicateRow      = errors.New("timestamp already has predicted durations")
)
