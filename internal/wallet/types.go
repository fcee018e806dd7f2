package wallet

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records wallet engine activity.
	Metrics interface {
		ObserveApplyBlock(err error, relevant int, started time.Time)
		ObserveAddressesDerived(account uint32, n int)
		SetBalance(account uint32, balance, available btcutil.Amount)
	}

	// Engine is the part of the wallet the follower drives.
	Engine interface {
		Height() int64
		ApplyBlock(block *model.Block) ([]model.WalletTransaction, error)
		AccountSnapshots() ([]model.AccountSnapshot, error)
		TakeChanged() bool
	}
	// BlockSource reads blocks from a node.
	BlockSource interface {
		LatestHeight(ctx context.Context) (int64, error)
		FetchBlock(ctx context.Context, height int64) (*model.Block, error)
	}
	// Repository persists wallet history and account snapshots.
	Repository interface {
		InsertWalletTransactions(ctx context.Context, txs []model.WalletTransaction) error
		InsertAccountSnapshots(ctx context.Context, snapshots []model.AccountSnapshot) error
	}
	// FollowerMetrics records follower iterations.
	FollowerMetrics interface {
		ObserveFetchTip(err error, started time.Time)
		ObserveProcessBatch(err error, blocks int, started time.Time)
	}
)
