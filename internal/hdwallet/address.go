package hdwallet

import (
	"bytes"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"go.uber.org/zap"
)

// Address is one derived key slot of a chain and the activity observed on it.
type Address struct {
	index        uint32
	branch       uint32
	key          *hdkeychain.ExtendedKey
	pubKey       []byte
	pubKeyHash   []byte
	address      *btcutil.AddressPubKeyHash
	creationTime time.Time

	balance   btcutil.Amount
	available btcutil.Amount
	// everUsed is set on the first matching output or input and never cleared.
	everUsed bool
}

func newAddress(
	params *chaincfg.Params,
	derive DeriveFunc,
	chainKey *hdkeychain.ExtendedKey,
	branch, index uint32,
	creationTime time.Time,
) (*Address, error) {
	id, err := deriveIdentity(derive, chainKey, branch, index)
	if err != nil {
		return nil, err
	}
	addr, err := btcutil.NewAddressPubKeyHash(id.pubKeyHash, params)
	if err != nil {
		return nil, &DerivationError{Branch: branch, Index: index, Err: err}
	}
	return &Address{
		index:        index,
		branch:       branch,
		key:          id.key,
		pubKey:       id.pubKey,
		pubKeyHash:   id.pubKeyHash,
		address:      addr,
		creationTime: creationTime,
	}, nil
}

// Index returns the chain-relative derivation index.
func (a *Address) Index() uint32 {
	return a.index
}

// PubKey returns the compressed public key.
func (a *Address) PubKey() []byte {
	return append([]byte(nil), a.pubKey...)
}

// PubKeyHash returns the HASH160 of the public key.
func (a *Address) PubKeyHash() []byte {
	return append([]byte(nil), a.pubKeyHash...)
}

// Address returns the pay-to-pubkey-hash address.
func (a *Address) Address() btcutil.Address {
	return a.address
}

// String returns the encoded address.
func (a *Address) String() string {
	return a.address.EncodeAddress()
}

// CreationTime is zero unless the address was added by a margin top-up.
func (a *Address) CreationTime() time.Time {
	return a.creationTime
}

func (a *Address) Balance() btcutil.Amount {
	return a.balance
}

func (a *Address) Available() btcutil.Amount {
	return a.available
}

// IsUnused reports whether the address never received or spent anything.
func (a *Address) IsUnused() bool {
	return !a.everUsed && a.balance == 0 && a.available == 0
}

// IsMatch compares the query against the derived identity. A nil argument skips that comparison.
func (a *Address) IsMatch(pubKey, pubKeyHash []byte) bool {
	if pubKey != nil && bytes.Equal(pubKey, a.pubKey) {
		return true
	}
	return pubKeyHash != nil && bytes.Equal(pubKeyHash, a.pubKeyHash)
}

// MatchAddress reports whether addr pays to this address' key.
func (a *Address) MatchAddress(addr btcutil.Address) bool {
	switch v := addr.(type) {
	case nil:
		return false
	case *btcutil.AddressPubKeyHash:
		return bytes.Equal(v.Hash160()[:], a.pubKeyHash)
	case *btcutil.AddressPubKey:
		return bytes.Equal(v.PubKey().SerializeCompressed(), a.pubKey)
	case *btcutil.AddressWitnessPubKeyHash:
		return bytes.Equal(v.WitnessProgram(), a.pubKeyHash)
	default:
		return addr.EncodeAddress() == a.address.EncodeAddress()
	}
}

// ApplyOutput credits value when the output pays to this address and reports whether it did.
func (a *Address) ApplyOutput(pubKey, pubKeyHash []byte, value btcutil.Amount, available bool) bool {
	if !a.IsMatch(pubKey, pubKeyHash) {
		return false
	}
	a.balance += value
	if available {
		a.available += value
	}
	a.everUsed = true
	return true
}

// ApplyInput debits the available balance when an input spends from this address.
func (a *Address) ApplyInput(pubKey []byte, value btcutil.Amount) bool {
	if !a.IsMatch(pubKey, nil) {
		return false
	}
	a.available -= value
	a.everUsed = true
	return true
}

// ClearBalance zeroes both counters. Usage history is kept.
func (a *Address) ClearBalance() {
	a.balance = 0
	a.available = 0
}

func (a *Address) gatherKey(creationTime time.Time, keys []DerivedKey) []DerivedKey {
	return append(keys, DerivedKey{
		Branch:       a.branch,
		Index:        a.index,
		Key:          a.key,
		PubKey:       a.PubKey(),
		PubKeyHash:   a.PubKeyHash(),
		CreationTime: creationTime,
	})
}

func (a *Address) snapshot() AddressSnapshot {
	balance := int64(a.balance)
	available := int64(a.available)
	index := a.index
	everUsed := a.everUsed
	return AddressSnapshot{
		Index:     &index,
		Balance:   &balance,
		Available: &available,
		EverUsed:  &everUsed,
	}
}

func (a *Address) logBalance(logger *zap.Logger) {
	if a.IsUnused() {
		return
	}
	logger.Info("address balance",
		zap.String("address", a.String()),
		zap.Uint32("index", a.index),
		zap.Int64("balance", int64(a.balance)),
		zap.Int64("available", int64(a.available)))
}
