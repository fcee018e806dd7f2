package hdwallet

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/lnd/clock"
	"go.uber.org/zap"
)

// Chain is the append-only address sequence of one derivation branch. Index equals position.
type Chain struct {
	params    *chaincfg.Params
	derive    DeriveFunc
	clock     clock.Clock
	logger    *zap.Logger
	chainKey  *hdkeychain.ExtendedKey
	branch    uint32
	isReceive bool
	name      string
	addrs     []*Address
}

// NewChain derives the chain key of the receive or change branch and its initial margin.
func NewChain(
	params *chaincfg.Params,
	accountKey *hdkeychain.ExtendedKey,
	isReceive bool,
	name string,
	opts ...Option,
) (*Chain, error) {
	c, err := newChain(params, accountKey, isReceive, name, newOptions(opts))
	if err != nil {
		return nil, err
	}

	c.addrs = make([]*Address, 0, DesiredMargin)
	for i := uint32(0); i < DesiredMargin; i++ {
		addr, err := newAddress(c.params, c.derive, c.chainKey, c.branch, i, time.Time{})
		if err != nil {
			return nil, err
		}
		c.addrs = append(c.addrs, addr)
	}

	c.logger.Info("created chain", zap.Int("addresses", len(c.addrs)))
	return c, nil
}

// RestoreChain re-derives a chain from its snapshot. Identities are always re-derived,
// only balances and usage come from the snapshot.
func RestoreChain(
	params *chaincfg.Params,
	accountKey *hdkeychain.ExtendedKey,
	snap ChainSnapshot,
	opts ...Option,
) (*Chain, error) {
	if err := snap.validate("chain"); err != nil {
		return nil, err
	}
	c, err := newChain(params, accountKey, *snap.IsReceive, *snap.Name, newOptions(opts))
	if err != nil {
		return nil, err
	}

	c.addrs = make([]*Address, 0, len(snap.Addrs))
	for pos, node := range snap.Addrs {
		if int64(*node.Index) != int64(pos) {
			return nil, &DerivationError{
				Branch: c.branch,
				Index:  *node.Index,
				Err:    fmt.Errorf("%w: expected %d", ErrMalformedIndex, pos),
			}
		}
		addr, err := newAddress(c.params, c.derive, c.chainKey, c.branch, *node.Index, time.Time{})
		if err != nil {
			return nil, err
		}
		addr.balance = btcutil.Amount(*node.Balance)
		addr.available = btcutil.Amount(*node.Available)
		if node.EverUsed != nil {
			addr.everUsed = *node.EverUsed
		}
		c.addrs = append(c.addrs, addr)
	}

	c.logger.Info("restored chain", zap.Int("addresses", len(c.addrs)))
	return c, nil
}

func newChain(
	params *chaincfg.Params,
	accountKey *hdkeychain.ExtendedKey,
	isReceive bool,
	name string,
	o options,
) (*Chain, error) {
	if accountKey == nil {
		return nil, ErrNilKey
	}
	if params == nil {
		params = &chaincfg.MainNetParams
	}
	branch := ChangeBranch
	if isReceive {
		branch = ReceiveBranch
	}
	chainKey, err := o.derive(accountKey, branch)
	if err != nil {
		return nil, &DerivationError{Branch: branch, Err: fmt.Errorf("derive chain key: %w", err)}
	}
	return &Chain{
		params:    params,
		derive:    o.derive,
		clock:     o.clock,
		logger:    o.logger.With(zap.String("chain", name), zap.Uint32("branch", branch)),
		chainKey:  chainKey,
		branch:    branch,
		isReceive: isReceive,
		name:      name,
	}, nil
}

func (c *Chain) Name() string {
	return c.name
}

func (c *Chain) IsReceive() bool {
	return c.isReceive
}

// Branch returns the account child index the chain key was derived at.
func (c *Chain) Branch() uint32 {
	return c.branch
}

// Addresses returns the addresses in index order.
func (c *Chain) Addresses() []*Address {
	return append([]*Address(nil), c.addrs...)
}

func (c *Chain) NumAddresses() int {
	return len(c.addrs)
}

// GatherKeys appends the key of every address to keys.
func (c *Chain) GatherKeys(creationTime time.Time, keys []DerivedKey) []DerivedKey {
	for _, addr := range c.addrs {
		keys = addr.gatherKey(creationTime, keys)
	}
	return keys
}

// ApplyOutput credits every matching address and reports whether any matched.
func (c *Chain) ApplyOutput(pubKey, pubKeyHash []byte, value btcutil.Amount, available bool) bool {
	matched := false
	for _, addr := range c.addrs {
		if addr.ApplyOutput(pubKey, pubKeyHash, value, available) {
			matched = true
		}
	}
	return matched
}

// ApplyInput debits every matching address and reports whether any matched.
func (c *Chain) ApplyInput(pubKey []byte, value btcutil.Amount) bool {
	matched := false
	for _, addr := range c.addrs {
		if addr.ApplyInput(pubKey, value) {
			matched = true
		}
	}
	return matched
}

func (c *Chain) ClearBalance() {
	for _, addr := range c.addrs {
		addr.ClearBalance()
	}
}

func (c *Chain) Balance() btcutil.Amount {
	var balance btcutil.Amount
	for _, addr := range c.addrs {
		balance += addr.Balance()
	}
	return balance
}

func (c *Chain) Available() btcutil.Amount {
	var available btcutil.Amount
	for _, addr := range c.addrs {
		available += addr.Available()
	}
	return available
}

// NextUnusedAddress returns the lowest-index unused address.
func (c *Chain) NextUnusedAddress() (*Address, error) {
	for _, addr := range c.addrs {
		if addr.IsUnused() {
			return addr, nil
		}
	}
	return nil, fmt.Errorf("chain %s: %w", c.name, ErrNoUnusedAddress)
}

// NextUnusedAddresses hands out n addresses from the start of the trailing margin.
// n may not exceed MaxSafeExtend.
func (c *Chain) NextUnusedAddresses(n int) ([]*Address, error) {
	if n < 1 {
		return nil, ErrInvalidCount
	}
	if n > MaxSafeExtend() {
		return nil, fmt.Errorf("chain %s: %w: %d > %d", c.name, ErrExceedsSafeExtend, n, MaxSafeExtend())
	}
	margin := c.MarginSize()
	if margin < n {
		return nil, fmt.Errorf("chain %s: %w: margin %d, requested %d", c.name, ErrInsufficientMargin, margin, n)
	}
	start := len(c.addrs) - margin
	return append([]*Address(nil), c.addrs[start:start+n]...), nil
}

// HasPubKey reports whether any address matches the identity.
func (c *Chain) HasPubKey(pubKey, pubKeyHash []byte) bool {
	for _, addr := range c.addrs {
		if addr.IsMatch(pubKey, pubKeyHash) {
			return true
		}
	}
	return false
}

// MarginSize counts the unused addresses after the last used one.
func (c *Chain) MarginSize() int {
	count := 0
	for i := len(c.addrs) - 1; i >= 0; i-- {
		if !c.addrs[i].IsUnused() {
			return count
		}
		count++
	}
	return count
}

// EnsureMargins tops the trailing margin back up to DesiredMargin and returns the number of
// addresses added. New keys are imported as one batch before they become part of the chain.
func (c *Chain) EnsureMargins(importer KeyImporter) (int, error) {
	margin := c.MarginSize()
	if margin >= DesiredMargin {
		return 0, nil
	}
	numAdd := DesiredMargin - margin

	c.logger.Info("expanding margin", zap.Int("margin", margin), zap.Int("adding", numAdd))

	now := c.clock.Now()
	first := len(c.addrs)
	fresh := make([]*Address, 0, numAdd)
	keys := make([]DerivedKey, 0, numAdd)
	for i := 0; i < numAdd; i++ {
		addr, err := newAddress(c.params, c.derive, c.chainKey, c.branch, uint32(first+i), now)
		if err != nil {
			return 0, err
		}
		fresh = append(fresh, addr)
		keys = addr.gatherKey(now, keys)
	}

	if importer != nil {
		if err := importer.ImportKeys(keys, now); err != nil {
			return 0, fmt.Errorf("import %d keys of chain %s: %w", len(keys), c.name, err)
		}
	}
	c.addrs = append(c.addrs, fresh...)

	c.logger.Debug("margin expanded", zap.Int("addresses", len(c.addrs)))
	return numAdd, nil
}

// FindAddress locates addr in the chain. The returned location has no account set.
func (c *Chain) FindAddress(addr btcutil.Address) *AddressLocation {
	for _, a := range c.addrs {
		if a.MatchAddress(addr) {
			return &AddressLocation{Chain: c, Address: a}
		}
	}
	return nil
}

// Snapshot returns the persisted form of the chain.
func (c *Chain) Snapshot() ChainSnapshot {
	name := c.name
	isReceive := c.isReceive
	addrs := make([]AddressSnapshot, 0, len(c.addrs))
	for _, addr := range c.addrs {
		addrs = append(addrs, addr.snapshot())
	}
	return ChainSnapshot{Name: &name, IsReceive: &isReceive, Addrs: addrs}
}

// LogBalance logs every address that has seen activity.
func (c *Chain) LogBalance() {
	for _, addr := range c.addrs {
		addr.logBalance(c.logger)
	}
}
