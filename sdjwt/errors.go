package sdjwt

import "errors"

var (
	// ErrUnknownField is returned when Issue is asked to disclose a field
	// name outside DisclosableFields, or the protected "type" field.
	ErrUnknownField = errors.New("sdjwt: field is not disclosable")

	// ErrMalformedDisclosure is returned when a disclosure segment does not
	// decode to the [salt, name, value] triple.
	ErrMalformedDisclosure = errors.New("sdjwt: malformed disclosure")

	// ErrDisclosureMismatch is returned when a presented disclosure's
	// recomputed digest is absent from the JWT's _sd claim (P4).
	ErrDisclosureMismatch = errors.New("sdjwt: disclosure digest not found in _sd")
)
