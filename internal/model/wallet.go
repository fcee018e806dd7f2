package model

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// AccountSnapshot is a persisted account document together with the sync height it reflects.
type AccountSnapshot struct {
	WalletID     string
	AccountIndex uint32
	Name         string
	Height       int64
	Document     []byte
	CreatedAt    time.Time
}

// Block is a block fetched from the node, reduced to what the wallet engine consumes.
type Block struct {
	Height       int64
	Hash         chainhash.Hash
	Timestamp    time.Time
	Transactions []*wire.MsgTx
}

// WalletTransaction is a transaction that touched at least one wallet account.
type WalletTransaction struct {
	WalletID    string
	TxID        string
	BlockHeight int64
	BlockHash   string
	Position    uint32
	RawTx       []byte
	CreatedAt   time.Time
}
