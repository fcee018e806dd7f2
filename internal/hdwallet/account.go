package hdwallet

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"go.uber.org/zap"
)

// Account groups the receive and change chains derived from one account key.
type Account struct {
	params     *chaincfg.Params
	accountKey *hdkeychain.ExtendedKey
	name       string
	receive    *Chain
	change     *Chain
	logger     *zap.Logger
}

// NewAccount derives both chains of a fresh account.
func NewAccount(params *chaincfg.Params, accountKey *hdkeychain.ExtendedKey, name string, opts ...Option) (*Account, error) {
	a := newAccount(params, accountKey, name, opts)

	receive, err := NewChain(params, accountKey, true, receiveChainName, a.chainOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", name, err)
	}
	change, err := NewChain(params, accountKey, false, changeChainName, a.chainOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", name, err)
	}
	a.receive, a.change = receive, change
	return a, nil
}

// RestoreAccount rebuilds an account from its snapshot. The key must be the one the
// snapshot was taken from; nothing in the document can verify it.
func RestoreAccount(params *chaincfg.Params, accountKey *hdkeychain.ExtendedKey, snap AccountSnapshot, opts ...Option) (*Account, error) {
	if err := snap.validate(); err != nil {
		return nil, err
	}
	a := newAccount(params, accountKey, *snap.Name, opts)

	receive, err := RestoreChain(params, accountKey, *snap.Receive, a.chainOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("account %s: restore receive chain: %w", a.name, err)
	}
	change, err := RestoreChain(params, accountKey, *snap.Change, a.chainOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("account %s: restore change chain: %w", a.name, err)
	}
	a.receive, a.change = receive, change
	return a, nil
}

func newAccount(params *chaincfg.Params, accountKey *hdkeychain.ExtendedKey, name string, opts []Option) *Account {
	if params == nil {
		params = &chaincfg.MainNetParams
	}
	o := newOptions(opts)
	return &Account{
		params:     params,
		accountKey: accountKey,
		name:       name,
		logger:     o.logger.With(zap.String("account", name)),
	}
}

func (a *Account) chainOptions(opts []Option) []Option {
	return append(append([]Option(nil), opts...), WithLogger(a.logger))
}

func (a *Account) Name() string {
	return a.name
}

func (a *Account) SetName(name string) {
	a.name = name
}

// XPub returns the base58 encoded extended public key of the account.
func (a *Account) XPub() (string, error) {
	if a.accountKey == nil {
		return "", ErrNilKey
	}
	pub, err := a.accountKey.Neuter()
	if err != nil {
		return "", fmt.Errorf("neuter account key: %w", err)
	}
	return pub.String(), nil
}

func (a *Account) ReceiveChain() *Chain {
	return a.receive
}

func (a *Account) ChangeChain() *Chain {
	return a.change
}

// GatherAllKeys appends the receive keys and then the change keys.
func (a *Account) GatherAllKeys(creationTime time.Time, keys []DerivedKey) []DerivedKey {
	keys = a.receive.GatherKeys(creationTime, keys)
	return a.change.GatherKeys(creationTime, keys)
}

// ApplyOutput reports the output to both chains.
func (a *Account) ApplyOutput(pubKey, pubKeyHash []byte, value btcutil.Amount, available bool) bool {
	matchedReceive := a.receive.ApplyOutput(pubKey, pubKeyHash, value, available)
	matchedChange := a.change.ApplyOutput(pubKey, pubKeyHash, value, available)
	return matchedReceive || matchedChange
}

// ApplyInput reports the input to both chains.
func (a *Account) ApplyInput(pubKey []byte, value btcutil.Amount) bool {
	matchedReceive := a.receive.ApplyInput(pubKey, value)
	matchedChange := a.change.ApplyInput(pubKey, value)
	return matchedReceive || matchedChange
}

func (a *Account) ClearBalance() {
	a.receive.ClearBalance()
	a.change.ClearBalance()
}

func (a *Account) Balance() btcutil.Amount {
	return a.receive.Balance() + a.change.Balance()
}

func (a *Account) Available() btcutil.Amount {
	return a.receive.Available() + a.change.Available()
}

// HasPubKey reports whether either chain owns the identity.
func (a *Account) HasPubKey(pubKey, pubKeyHash []byte) bool {
	return a.receive.HasPubKey(pubKey, pubKeyHash) || a.change.HasPubKey(pubKey, pubKeyHash)
}

// FindAddress searches the receive chain and then the change chain.
func (a *Account) FindAddress(addr btcutil.Address) *AddressLocation {
	loc := a.receive.FindAddress(addr)
	if loc == nil {
		loc = a.change.FindAddress(addr)
	}
	if loc != nil {
		loc.Account = a
	}
	return loc
}

// EnsureMargins tops up both chains and returns the larger number of addresses added.
func (a *Account) EnsureMargins(importer KeyImporter) (int, error) {
	addedReceive, err := a.receive.EnsureMargins(importer)
	if err != nil {
		return 0, fmt.Errorf("account %s: %w", a.name, err)
	}
	addedChange, err := a.change.EnsureMargins(importer)
	if err != nil {
		return addedReceive, fmt.Errorf("account %s: %w", a.name, err)
	}
	return max(addedReceive, addedChange), nil
}

func (a *Account) NextReceiveAddress() (*Address, error) {
	return a.receive.NextUnusedAddress()
}

func (a *Account) NextChangeAddress() (*Address, error) {
	return a.change.NextUnusedAddress()
}

// NextReceiveAddresses hands out n receive addresses at once, see Chain.NextUnusedAddresses.
func (a *Account) NextReceiveAddresses(n int) ([]*Address, error) {
	return a.receive.NextUnusedAddresses(n)
}

// CoinSelector returns a selector restricted to outputs this account owns.
func (a *Account) CoinSelector(delegate CoinSelector) *AccountCoinSelector {
	return &AccountCoinSelector{
		account:  a,
		delegate: delegate,
		logger:   a.logger,
	}
}

// Snapshot returns the persisted form of the account.
func (a *Account) Snapshot() AccountSnapshot {
	name := a.name
	receive := a.receive.Snapshot()
	change := a.change.Snapshot()
	return AccountSnapshot{Name: &name, Receive: &receive, Change: &change}
}

// LogBalance logs the account totals followed by every used address.
func (a *Account) LogBalance() {
	a.logger.Info("account balance",
		zap.Int64("balance", int64(a.Balance())),
		zap.Int64("available", int64(a.Available())))
	a.receive.LogBalance()
	a.change.LogBalance()
}
