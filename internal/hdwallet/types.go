package hdwallet

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// KeyImporter receives keys derived by margin top-ups, one batch per chain.
	KeyImporter interface {
		ImportKeys(keys []DerivedKey, creationTime time.Time) error
	}
	// CoinSelector picks a subset of candidates whose total covers target.
	CoinSelector interface {
		Select(target btcutil.Amount, candidates []model.Output) (*model.Selection, error)
	}
)
