package errs

import "errors"

// Error kinds shared by the store, ledger and command layers. Callers wrap
// them with context and test with errors.Is.
var (
	// ErrStorageUnavailable means the storage directory could not be resolved.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrIO                 = errors.New("i/o failure")
	ErrNotFound           = errors.New("not found")
	// ErrDecode is returned for malformed stored data.
	ErrDecode = errors.New("decode failure")
	// ErrEncode is returned when a ledger cannot be serialized.
	ErrEncode        = errors.New("encode failure")
	ErrDuplicateName = errors.New("duplicate name")
	ErrInvalid       = errors.New("invalid")
	ErrInvalidName   = errors.New("invalid snapshot name")
	// ErrReservedName guards current and backup from direct user saves.
	ErrReservedName = errors.New("reserved snapshot name")
)
