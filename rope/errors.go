package rope

import "errors"

var (
	// ErrInvalidArgument is returned when a node would be built from an
	// empty fragment or a missing child.
	ErrInvalidArgument = errors.New("rope: invalid argument")
	// ErrIndexOutOfBounds is returned when an index or range does not fit
	// the rope it is applied to.
	ErrIndexOutOfBounds = errors.New("rope: index out of bounds")
	// ErrCorrupt is returned by Check when a node breaks a structural invariant.
	ErrCorrupt = errors.New("rope: corrupt node")
)
