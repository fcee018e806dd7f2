package wallet

import "errors"

var (
	// ErrAccountNotFound is returned for unknown account indices.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAddressNotFound is returned when no account owns an address.
	ErrAddressNotFound = errors.New("address not found")
	// ErrInvalidAddress is returned for addresses that do not decode on the wallet network.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrUnexpectedHeight is returned when a block does not extend the wallet tip.
	ErrUnexpectedHeight = errors.New("block does not extend the wallet tip")
	// ErrNetworkMismatch is returned when the master key belongs to another network.
	ErrNetworkMismatch = errors.New("master key network mismatch")
	// ErrPublicMasterKey is returned when the master key cannot derive hardened accounts.
	ErrPublicMasterKey = errors.New("master key must be private")
)
