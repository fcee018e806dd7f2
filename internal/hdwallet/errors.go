package hdwallet

import (
	"errors"
	"fmt"
)

var (
	// ErrNoUnusedAddress is returned when a chain has no unused address left.
	ErrNoUnusedAddress = errors.New("no unused address available")
	// ErrExceedsSafeExtend is returned when more addresses are requested than MaxSafeExtend allows.
	ErrExceedsSafeExtend = errors.New("requested address count exceeds the safe extend limit")
	// ErrInsufficientMargin is returned when the trailing margin cannot satisfy a bulk request.
	ErrInsufficientMargin = errors.New("chain margin too small, ensure margins first")
	// ErrInvalidCount is returned for non-positive bulk address requests.
	ErrInvalidCount = errors.New("address count must be positive")
	// ErrMissingField is returned when a persisted document lacks a required field.
	ErrMissingField = errors.New("missing required field")
	// ErrMalformedIndex is returned when a persisted address index does not match its position.
	ErrMalformedIndex = errors.New("malformed address index")
	// ErrUnsupportedScript is returned for locking scripts without a pubkey or pubkey-hash identity.
	ErrUnsupportedScript = errors.New("unsupported locking script")
	// ErrNilKey is returned when a nil extended key is supplied.
	ErrNilKey = errors.New("extended key is required")
)

// DerivationError reports a failure to derive the key at branch/index.
type DerivationError struct {
	Branch uint32
	Index  uint32
	Err    error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("derive key %d/%d: %v", e.Branch, e.Index, e.Err)
}

func (e *DerivationError) Unwrap() error {
	return e.Err
}
