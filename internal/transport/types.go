// Package transport exposes the wallet over REST and gRPC.
package transport

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/wallet"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// WalletService is the wallet surface served to clients.
	WalletService interface {
		ID() string
		Network() model.Network
		Height() int64
		KeyCount() int
		Birthday() time.Time
		Accounts() []wallet.AccountInfo
		CreateAccount(name string) (wallet.AccountInfo, error)
		RenameAccount(index uint32, name string) (wallet.AccountInfo, error)
		NextReceiveAddress(index uint32) (wallet.AddressInfo, error)
		NextReceiveAddresses(index uint32, n int) ([]wallet.AddressInfo, error)
		NextChangeAddress(index uint32) (wallet.AddressInfo, error)
		FindAddress(encoded string) (wallet.AddressInfo, error)
		Unspent() []model.Output
		SelectCoins(index uint32, target btcutil.Amount) (*model.Selection, error)
	}
)
