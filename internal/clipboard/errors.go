package clipboard

import "errors"

// Errors returned from the paste path.
var (
	// ErrEmpty indicates nothing has been copied or cut.
	ErrEmpty = errors.New("clipboard is empty")

	// ErrNoHandler indicates no registered handler accepts the clipboard kind.
	ErrNoHandler = errors.New("no handler for clipboard kind")

	// ErrInvalidTarget indicates the handler cannot paste at the target.
	ErrInvalidTarget = errors.New("invalid paste target")

	// ErrIncompatible indicates the payload does not fit the destination,
	// such as an item whose shape differs from the container's template.
	ErrIncompatible = errors.New("incompatible clipboard payload")
)
