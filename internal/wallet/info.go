package wallet

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/hdwallet"
	"go.uber.org/zap"
)

// AccountInfo is a read-only summary of an account.
type AccountInfo struct {
	Index            uint32
	Name             string
	XPub             string
	Balance          btcutil.Amount
	Available        btcutil.Amount
	ReceiveAddresses int
	ChangeAddresses  int
}

// AddressInfo describes one wallet address and where it lives.
type AddressInfo struct {
	Account     uint32
	AccountName string
	Chain       string
	IsReceive   bool
	Index       uint32
	Address     string
	Balance     btcutil.Amount
	Available   btcutil.Amount
	Unused      bool
}

func (w *Wallet) accountInfo(index uint32, account *hdwallet.Account) AccountInfo {
	xpub, err := account.XPub()
	if err != nil {
		w.logger.Warn("account xpub unavailable", zap.Uint32("account", index), zap.Error(err))
	}
	return AccountInfo{
		Index:            index,
		Name:             account.Name(),
		XPub:             xpub,
		Balance:          account.Balance(),
		Available:        account.Available(),
		ReceiveAddresses: account.ReceiveChain().NumAddresses(),
		ChangeAddresses:  account.ChangeChain().NumAddresses(),
	}
}

func addressInfo(index uint32, account *hdwallet.Account, chain *hdwallet.Chain, addr *hdwallet.Address) AddressInfo {
	return AddressInfo{
		Account:     index,
		AccountName: account.Name(),
		Chain:       chain.Name(),
		IsReceive:   chain.IsReceive(),
		Index:       addr.Index(),
		Address:     addr.String(),
		Balance:     addr.Balance(),
		Available:   addr.Available(),
		Unused:      addr.IsUnused(),
	}
}
