package objects

import "errors"

// Failure taxonomy for the object store and codecs. Callers match these with
// errors.Is; every error returned from this package wraps exactly one of them
// (or an underlying I/O error).
var (
	// ErrNotFound reports that no object file exists for the requested id.
	ErrNotFound = errors.New("object not found")

	// ErrCorruptObject reports a frame missing its space/NUL delimiters or
	// whose declared payload length does not match the actual payload.
	ErrCorruptObject = errors.New("corrupt object")

	// ErrUnknownType reports a frame whose type tag is not a registered variant.
	ErrUnknownType = errors.New("unknown object type")

	// ErrFormat reports a commit payload whose header/message boundary was
	// never located.
	ErrFormat = errors.New("malformed commit format")

	// ErrNotImplemented reports a declared variant (tree, tag) that has no
	// functioning codec in this core.
	ErrNotImplemented = errors.New("object type not implemented")
)
