package amrio

import (
	"errors"
)

// Parse failures are classified by the sentinel errors below so callers can
// tell a corrupt file from a pair of files that disagree with one another.
// All of them are terminal: no partial Header is ever returned, and a caller
// that wants to retry must do so on a fresh Open call.
var (
	// ErrMalformedHeader means a file broke its own grammar: a line had the
	// wrong number of tokens, a token wasn't numeric where a number was
	// expected, or a sanity literal had the wrong value.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrStructureMismatch means two parts of the plotfile disagree about
	// its structure: a level descriptor out of sequence, or a cell count
	// that isn't repeated consistently within a cell-index file.
	ErrStructureMismatch = errors.New("structure mismatch")

	// ErrSchemaMismatch means a cell-index file declares a different number
	// of fields than the Header file does.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrFieldNotFound means a field name was looked up that the Header
	// doesn't declare.
	ErrFieldNotFound = errors.New("field not found")
)
