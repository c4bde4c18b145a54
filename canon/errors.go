package canon

import "errors"

var (
	// ErrFloatNotAllowed is returned when a value to be canonicalized
	// contains a floating point number anywhere in its structure.
	ErrFloatNotAllowed = errors.New("canon: floating point numbers are not allowed in signed payloads")

	// ErrUnsupportedType is returned for Go values canon does not know how
	// to encode (channels, funcs, complex numbers, and so on).
	ErrUnsupportedType = errors.New("canon: unsupported value type")

	// ErrInvalidJSON is returned when Canonicalize is given bytes that do
	// not parse as JSON.
	ErrInvalidJSON = errors.New("canon: input is not valid JSON")
)
