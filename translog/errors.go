package translog

import "errors"

var (
	// ErrStatementTooLarge is returned when a registered statement exceeds
	// 50 KB.
	ErrStatementTooLarge = errors.New("translog: statement exceeds 50KB limit")

	// ErrStatementMalformed is returned when a statement is not a
	// well-formed three-segment JWT with a decodable header.
	ErrStatementMalformed = errors.New("translog: statement is not a well-formed jwt")

	// ErrEntryNotFound is returned by getReceipt/getIssuerProfile lookups
	// against an unknown entryId.
	ErrEntryNotFound = errors.New("translog: entry not found")

	// ErrInvalidPageSize is returned when listEntries is asked for more
	// than 100 entries in one page.
	ErrInvalidPageSize = errors.New("translog: limit exceeds 100")

	// ErrEmptyLog is returned by getReceipt/checkpoint operations against a
	// log with no entries.
	ErrEmptyLog = errors.New("translog: log is empty")

	// ErrCheckpointInvalid is returned when a checkpoint fails to parse or
	// its COSE signature does not verify.
	ErrCheckpointInvalid = errors.New("translog: checkpoint invalid")
)
