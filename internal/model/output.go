package model

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// Output is a spendable transaction output offered to coin selection.
type Output struct {
	OutPoint      wire.OutPoint
	Value         btcutil.Amount
	PkScript      []byte
	Confirmations int64
}

// Selection is the subset of outputs picked to fund a spend.
type Selection struct {
	Outputs []Output
	Total   btcutil.Amount
}
