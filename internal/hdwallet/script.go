package hdwallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// ParseScriptIdentity extracts the identity a locking script pays to. Pay-to-pubkey scripts
// yield the public key, pay-to-pubkey-hash and pay-to-witness-pubkey-hash scripts yield the
// key hash. Every other script class fails with ErrUnsupportedScript.
func ParseScriptIdentity(pkScript []byte, params *chaincfg.Params) (pubKey, pubKeyHash []byte, err error) {
	if params == nil {
		params = &chaincfg.MainNetParams
	}
	class, addresses, _, err := txscript.ExtractPkScriptAddrs(pkScript, params)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedScript, err)
	}
	if len(addresses) != 1 {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedScript, class)
	}

	switch class {
	case txscript.PubKeyTy:
		addr, ok := addresses[0].(*btcutil.AddressPubKey)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedScript, class)
		}
		return addr.ScriptAddress(), nil, nil
	case txscript.PubKeyHashTy:
		addr, ok := addresses[0].(*btcutil.AddressPubKeyHash)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedScript, class)
		}
		hash := addr.Hash160()
		return nil, append([]byte(nil), hash[:]...), nil
	case txscript.WitnessV0PubKeyHashTy:
		addr, ok := addresses[0].(*btcutil.AddressWitnessPubKeyHash)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedScript, class)
		}
		return nil, append([]byte(nil), addr.WitnessProgram()...), nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedScript, class)
	}
}
