package hdwallet

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DeriveFunc derives the child of parent at index.
type DeriveFunc func(parent *hdkeychain.ExtendedKey, index uint32) (*hdkeychain.ExtendedKey, error)

// DeriveChild is the BIP32 derivation used unless another DeriveFunc is configured.
func DeriveChild(parent *hdkeychain.ExtendedKey, index uint32) (*hdkeychain.ExtendedKey, error) {
	if parent == nil {
		return nil, ErrNilKey
	}
	return parent.Derive(index)
}

// DerivedKey is the key material of one address handed to the key store.
type DerivedKey struct {
	Branch       uint32
	Index        uint32
	Key          *hdkeychain.ExtendedKey
	PubKey       []byte
	PubKeyHash   []byte
	CreationTime time.Time
}

// Path is the derivation path of the key relative to its account.
func (k DerivedKey) Path() string {
	return fmt.Sprintf("%d/%d", k.Branch, k.Index)
}

type identity struct {
	key        *hdkeychain.ExtendedKey
	pubKey     []byte
	pubKeyHash []byte
}

func deriveIdentity(derive DeriveFunc, chainKey *hdkeychain.ExtendedKey, branch, index uint32) (identity, error) {
	if index >= hdkeychain.HardenedKeyStart {
		return identity{}, &DerivationError{Branch: branch, Index: index, Err: hdkeychain.ErrInvalidChild}
	}
	key, err := derive(chainKey, index)
	if err != nil {
		return identity{}, &DerivationError{Branch: branch, Index: index, Err: err}
	}
	pub, err := key.ECPubKey()
	if err != nil {
		return identity{}, &DerivationError{Branch: branch, Index: index, Err: err}
	}
	pubKey := pub.SerializeCompressed()
	return identity{
		key:        key,
		pubKey:     pubKey,
		pubKeyHash: btcutil.Hash160(pubKey),
	}, nil
}
