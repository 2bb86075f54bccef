package onepin

import "errors"

var (
	// ErrInvalidWidth is returned for a packet width outside 1..32 bits.
	ErrInvalidWidth = errors.New("invalid packet width")
	// ErrNilDriver is returned when no driver is given to the link.
	ErrNilDriver = errors.New("nil driver")
)
