// Package config holds the enumerated deployment configuration of §6: a
// plain struct, documented field by field, validated by the constructor
// that consumes it. There is no environment-variable or flag-parsing
// library wired here; sourcing configuration values into this struct is an
// external collaborator's concern (§1 scope).
package config
