// Package wallet runs the accounts of one HD wallet against the blocks of a bitcoin node.
package wallet

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/hdwallet"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/hdwallet/coinselect"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/pkg/safe"
	"github.com/lightningnetwork/lnd/clock"
	"go.uber.org/zap"
)

// Config holds the dependencies and settings of a Wallet.
type Config struct {
	ID               string
	Network          model.Network
	MasterKey        *hdkeychain.ExtendedKey
	MinConfirmations int64
	StartHeight      int64
	Clock            clock.Clock
	Logger           *zap.Logger
	Metrics          Metrics
	Selector         hdwallet.CoinSelector
	// Derive overrides BIP32 child derivation of chain and address keys.
	Derive hdwallet.DeriveFunc
}

type ownedOutput struct {
	pubKey   []byte
	value    btcutil.Amount
	pkScript []byte
	height   int64
}

type historyEntry struct {
	tx     *wire.MsgTx
	height int64
}

// Wallet owns the master key, the accounts derived from it and the outputs they received.
type Wallet struct {
	mu sync.RWMutex

	id       string
	network  model.Network
	params   *chaincfg.Params
	master   *hdkeychain.ExtendedKey
	minConf  int64
	clock    clock.Clock
	logger   *zap.Logger
	metrics  Metrics
	selector hdwallet.CoinSelector
	derive   hdwallet.DeriveFunc
	keys     *KeyStore
	// changed is set by mutations the follower does not see through blocks.
	changed atomic.Bool

	accounts map[uint32]*hdwallet.Account
	order    []uint32
	owned    map[wire.OutPoint]ownedOutput
	history  []historyEntry
	tip      int64
}

// New validates cfg and creates a wallet without accounts.
func New(cfg Config) (*Wallet, error) {
	if cfg.ID == "" {
		return nil, errors.New("wallet id is required")
	}
	if cfg.MasterKey == nil {
		return nil, hdwallet.ErrNilKey
	}
	if !cfg.MasterKey.IsPrivate() {
		return nil, ErrPublicMasterKey
	}
	if cfg.Metrics == nil {
		return nil, errors.New("wallet metrics is required")
	}
	params, err := cfg.Network.Params()
	if err != nil {
		return nil, err
	}
	if !cfg.MasterKey.IsForNet(params) {
		return nil, fmt.Errorf("%w: expected %s", ErrNetworkMismatch, params.Name)
	}

	w := &Wallet{
		id:       cfg.ID,
		network:  cfg.Network,
		params:   params,
		master:   cfg.MasterKey,
		minConf:  cfg.MinConfirmations,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		selector: cfg.Selector,
		derive:   cfg.Derive,
		keys:     NewKeyStore(),
		accounts: make(map[uint32]*hdwallet.Account),
		owned:    make(map[wire.OutPoint]ownedOutput),
		tip:      cfg.StartHeight - 1,
	}
	if w.minConf < 1 {
		w.minConf = defaultMinConfirmations
	}
	if w.clock == nil {
		w.clock = clock.NewDefaultClock()
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	if w.selector == nil {
		w.selector = coinselect.New()
	}
	w.logger = w.logger.With(zap.String("wallet", w.id), zap.String("network", string(w.network)))
	return w, nil
}

func (w *Wallet) ID() string {
	return w.id
}

func (w *Wallet) Network() model.Network {
	return w.network
}

// Height returns the height of the last applied block.
func (w *Wallet) Height() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tip
}

// KeyCount returns the number of keys in the wallet key store.
func (w *Wallet) KeyCount() int {
	return w.keys.Len()
}

// Birthday is the earliest creation time of a wallet key, zero when every key was restored.
func (w *Wallet) Birthday() time.Time {
	return w.keys.Birthday()
}

// TakeChanged reports whether accounts were created or renamed since the last call.
func (w *Wallet) TakeChanged() bool {
	return w.changed.Swap(false)
}

func (w *Wallet) accountOptions() []hdwallet.Option {
	opts := []hdwallet.Option{
		hdwallet.WithClock(w.clock),
		hdwallet.WithLogger(w.logger.Named("account")),
	}
	if w.derive != nil {
		opts = append(opts, hdwallet.WithDeriveFunc(w.derive))
	}
	return opts
}

func (w *Wallet) accountKey(index uint32) (*hdkeychain.ExtendedKey, error) {
	if index >= hdkeychain.HardenedKeyStart {
		return nil, fmt.Errorf("account index %d out of range", index)
	}
	key, err := w.master.Derive(hdkeychain.HardenedKeyStart + index)
	if err != nil {
		return nil, fmt.Errorf("derive account %d key: %w", index, err)
	}
	return key, nil
}

func (w *Wallet) nextAccountIndex() uint32 {
	if len(w.order) == 0 {
		return 0
	}
	return slices.Max(w.order) + 1
}

func (w *Wallet) addAccount(index uint32, account *hdwallet.Account) {
	w.accounts[index] = account
	w.order = append(w.order, index)
	slices.Sort(w.order)
}

// CreateAccount derives a new account at the next hardened index and imports its keys.
func (w *Wallet) CreateAccount(name string) (AccountInfo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	index := w.nextAccountIndex()
	key, err := w.accountKey(index)
	if err != nil {
		return AccountInfo{}, err
	}
	account, err := hdwallet.NewAccount(w.params, key, name, w.accountOptions()...)
	if err != nil {
		return AccountInfo{}, fmt.Errorf("create account %d: %w", index, err)
	}
	now := w.clock.Now()
	if err := w.keys.Importer(index).ImportKeys(account.GatherAllKeys(now, nil), now); err != nil {
		return AccountInfo{}, fmt.Errorf("import account %d keys: %w", index, err)
	}
	w.addAccount(index, account)
	w.publishBalance(index, account)
	w.changed.Store(true)

	w.logger.Info("account created", zap.Uint32("account", index), zap.String("name", name))
	return w.accountInfo(index, account), nil
}

// Restore rebuilds accounts from their snapshots and replays the wallet history on top of them.
// Accounts that fail to restore are skipped and their errors joined; the others stay usable.
func (w *Wallet) Restore(snapshots []model.AccountSnapshot, history []model.WalletTransaction) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	for _, snap := range snapshots {
		if err := w.restoreAccount(snap); err != nil {
			w.logger.Error("account not restored", zap.Uint32("account", snap.AccountIndex), zap.Error(err))
			errs = append(errs, fmt.Errorf("account %d: %w", snap.AccountIndex, err))
			continue
		}
		w.tip = max(w.tip, snap.Height)
	}

	if len(history) > 0 {
		entries := make([]historyEntry, 0, len(history))
		for _, wtx := range history {
			var tx wire.MsgTx
			if err := tx.Deserialize(bytes.NewReader(wtx.RawTx)); err != nil {
				errs = append(errs, fmt.Errorf("decode transaction %s: %w", wtx.TxID, err))
				continue
			}
			entries = append(entries, historyEntry{tx: &tx, height: wtx.BlockHeight})
			w.tip = max(w.tip, wtx.BlockHeight)
		}
		slices.SortStableFunc(entries, func(a, b historyEntry) int {
			return cmp.Compare(a.height, b.height)
		})
		w.history = entries
		if err := w.replay(); err != nil {
			errs = append(errs, fmt.Errorf("replay history: %w", err))
		}
	}

	w.publishBalances()
	w.logger.Info("wallet restored",
		zap.Int("accounts", len(w.order)),
		zap.Int("transactions", len(w.history)),
		zap.Int64("height", w.tip),
		zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}

func (w *Wallet) restoreAccount(snap model.AccountSnapshot) error {
	if _, ok := w.accounts[snap.AccountIndex]; ok {
		return fmt.Errorf("duplicate account index %d", snap.AccountIndex)
	}
	doc, err := hdwallet.DecodeAccountSnapshot(snap.Document)
	if err != nil {
		return err
	}
	key, err := w.accountKey(snap.AccountIndex)
	if err != nil {
		return err
	}
	account, err := hdwallet.RestoreAccount(w.params, key, doc, w.accountOptions()...)
	if err != nil {
		return err
	}
	if err := w.keys.Importer(snap.AccountIndex).ImportKeys(account.GatherAllKeys(time.Time{}, nil), time.Time{}); err != nil {
		return err
	}
	w.addAccount(snap.AccountIndex, account)
	return nil
}

// ApplyBlock reports every transaction of block to the accounts and returns the ones that
// touched the wallet. Blocks must be applied in height order.
func (w *Wallet) ApplyBlock(block *model.Block) (relevant []model.WalletTransaction, err error) {
	started := time.Now()
	defer func() {
		w.metrics.ObserveApplyBlock(err, len(relevant), started)
	}()

	if block == nil {
		return nil, errors.New("nil block")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if block.Height != w.tip+1 {
		return nil, fmt.Errorf("%w: tip %d, block %d", ErrUnexpectedHeight, w.tip, block.Height)
	}

	// A failed block is rolled back so the follower can apply it again.
	prevTip, prevHistory := w.tip, len(w.history)
	defer func() {
		if err == nil {
			return
		}
		relevant = nil
		w.tip = prevTip
		w.history = w.history[:prevHistory]
		if replayErr := w.replay(); replayErr != nil {
			w.logger.Error("rollback replay failed", zap.Int64("height", block.Height), zap.Error(replayErr))
		}
		w.publishBalances()
	}()

	w.tip = block.Height
	if w.minConf > 1 && len(w.history) > 0 {
		if err := w.replay(); err != nil {
			return nil, err
		}
	}

	now := w.clock.Now()
	for pos, tx := range block.Transactions {
		touched, err := w.applyTx(tx, block.Height)
		if err != nil {
			return nil, err
		}
		if !touched {
			continue
		}
		w.history = append(w.history, historyEntry{tx: tx, height: block.Height})
		if _, err := w.ensureMargins(); err != nil {
			return nil, err
		}

		wtx, err := w.walletTransaction(tx, block.Height, block.Hash, pos, now)
		if err != nil {
			return nil, err
		}
		relevant = append(relevant, wtx)
	}

	if len(relevant) > 0 {
		w.logger.Info("block applied",
			zap.Int64("height", block.Height),
			zap.Int("relevant", len(relevant)))
	}
	w.publishBalances()
	return relevant, nil
}

func (w *Wallet) walletTransaction(
	tx *wire.MsgTx,
	height int64,
	blockHash chainhash.Hash,
	pos int,
	now time.Time,
) (model.WalletTransaction, error) {
	position, err := safe.Uint32(pos)
	if err != nil {
		return model.WalletTransaction{}, fmt.Errorf("transaction position: %w", err)
	}
	var raw bytes.Buffer
	raw.Grow(tx.SerializeSize())
	if err := tx.Serialize(&raw); err != nil {
		return model.WalletTransaction{}, fmt.Errorf("serialize transaction %s: %w", tx.TxHash(), err)
	}
	return model.WalletTransaction{
		WalletID:    w.id,
		TxID:        tx.TxHash().String(),
		BlockHeight: height,
		BlockHash:   blockHash.String(),
		Position:    position,
		RawTx:       raw.Bytes(),
		CreatedAt:   now,
	}, nil
}

// applyTx spends owned outputs referenced by the inputs and credits outputs paying to an
// account. It reports whether the transaction touched the wallet.
func (w *Wallet) applyTx(tx *wire.MsgTx, height int64) (bool, error) {
	relevant := false
	for _, in := range tx.TxIn {
		out, ok := w.owned[in.PreviousOutPoint]
		if !ok {
			continue
		}
		for _, index := range w.order {
			w.accounts[index].ApplyInput(out.pubKey, out.value)
		}
		delete(w.owned, in.PreviousOutPoint)
		relevant = true
	}

	available := w.tip-height+1 >= w.minConf
	txHash := tx.TxHash()
	for i, out := range tx.TxOut {
		pubKey, pubKeyHash, err := hdwallet.ParseScriptIdentity(out.PkScript, w.params)
		if err != nil {
			continue
		}
		value := btcutil.Amount(out.Value)
		matched := false
		for _, index := range w.order {
			if w.accounts[index].ApplyOutput(pubKey, pubKeyHash, value, available) {
				matched = true
			}
		}
		if !matched {
			continue
		}
		if key, _, ok := w.keys.Lookup(pubKey, pubKeyHash); ok {
			pubKey = key.PubKey
		}
		outIndex, err := safe.Uint32(i)
		if err != nil {
			return relevant, fmt.Errorf("output index of %s: %w", txHash, err)
		}
		w.owned[wire.OutPoint{Hash: txHash, Index: outIndex}] = ownedOutput{
			pubKey:   pubKey,
			value:    value,
			pkScript: out.PkScript,
			height:   height,
		}
		relevant = true
	}
	return relevant, nil
}

// replay recomputes balances and owned outputs from the history at the current tip. Margins
// are topped up after every relevant transaction, so history paying past the restored
// addresses is still matched.
func (w *Wallet) replay() error {
	for _, index := range w.order {
		w.accounts[index].ClearBalance()
	}
	clear(w.owned)
	for _, entry := range w.history {
		touched, err := w.applyTx(entry.tx, entry.height)
		if err != nil {
			return err
		}
		if !touched {
			continue
		}
		if _, err := w.ensureMargins(); err != nil {
			return fmt.Errorf("ensure margins after %s: %w", entry.tx.TxHash(), err)
		}
	}
	return nil
}

// EnsureMargins tops up the address margins of every account.
func (w *Wallet) EnsureMargins() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ensureMargins()
}

func (w *Wallet) ensureMargins() (int, error) {
	var (
		total int
		errs  []error
	)
	for _, index := range w.order {
		account := w.accounts[index]
		added, err := account.EnsureMargins(w.keys.Importer(index))
		if err != nil {
			errs = append(errs, err)
		}
		if added > 0 {
			w.metrics.ObserveAddressesDerived(index, added)
			total += added
		}
	}
	return total, errors.Join(errs...)
}

// RenameAccount changes the display name of an account.
func (w *Wallet) RenameAccount(index uint32, name string) (AccountInfo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	account, err := w.account(index)
	if err != nil {
		return AccountInfo{}, err
	}
	account.SetName(name)
	w.changed.Store(true)
	return w.accountInfo(index, account), nil
}

func (w *Wallet) account(index uint32) (*hdwallet.Account, error) {
	account, ok := w.accounts[index]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrAccountNotFound, index)
	}
	return account, nil
}

// Accounts lists the accounts in index order.
func (w *Wallet) Accounts() []AccountInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()

	infos := make([]AccountInfo, 0, len(w.order))
	for _, index := range w.order {
		infos = append(infos, w.accountInfo(index, w.accounts[index]))
	}
	return infos
}

// Account returns one account summary.
func (w *Wallet) Account(index uint32) (AccountInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	account, err := w.account(index)
	if err != nil {
		return AccountInfo{}, err
	}
	return w.accountInfo(index, account), nil
}

// Balance returns the total and available balance of an account.
func (w *Wallet) Balance(index uint32) (balance, available btcutil.Amount, err error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	account, err := w.account(index)
	if err != nil {
		return 0, 0, err
	}
	return account.Balance(), account.Available(), nil
}

// NextReceiveAddress returns the first unused receive address of an account.
func (w *Wallet) NextReceiveAddress(index uint32) (AddressInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	account, err := w.account(index)
	if err != nil {
		return AddressInfo{}, err
	}
	addr, err := account.NextReceiveAddress()
	if err != nil {
		return AddressInfo{}, err
	}
	return addressInfo(index, account, account.ReceiveChain(), addr), nil
}

// NextReceiveAddresses returns n receive addresses from the start of the account's margin.
func (w *Wallet) NextReceiveAddresses(index uint32, n int) ([]AddressInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	account, err := w.account(index)
	if err != nil {
		return nil, err
	}
	addrs, err := account.NextReceiveAddresses(n)
	if err != nil {
		return nil, err
	}
	infos := make([]AddressInfo, 0, len(addrs))
	for _, addr := range addrs {
		infos = append(infos, addressInfo(index, account, account.ReceiveChain(), addr))
	}
	return infos, nil
}

// NextChangeAddress returns the first unused change address of an account.
func (w *Wallet) NextChangeAddress(index uint32) (AddressInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	account, err := w.account(index)
	if err != nil {
		return AddressInfo{}, err
	}
	addr, err := account.NextChangeAddress()
	if err != nil {
		return AddressInfo{}, err
	}
	return addressInfo(index, account, account.ChangeChain(), addr), nil
}

// FindAddress locates an encoded address among the accounts.
func (w *Wallet) FindAddress(encoded string) (AddressInfo, error) {
	addr, err := btcutil.DecodeAddress(encoded, w.params)
	if err != nil {
		return AddressInfo{}, fmt.Errorf("%w %q: %v", ErrInvalidAddress, encoded, err)
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, index := range w.order {
		if loc := w.accounts[index].FindAddress(addr); loc != nil {
			return addressInfo(index, loc.Account, loc.Chain, loc.Address), nil
		}
	}
	return AddressInfo{}, fmt.Errorf("%w: %s", ErrAddressNotFound, encoded)
}

// SelectCoins picks unspent wallet outputs of one account covering target.
func (w *Wallet) SelectCoins(index uint32, target btcutil.Amount) (*model.Selection, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	account, err := w.account(index)
	if err != nil {
		return nil, err
	}
	return account.CoinSelector(w.selector).Select(target, w.unspent())
}

// Unspent returns every unspent wallet output with its confirmation count.
func (w *Wallet) Unspent() []model.Output {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.unspent()
}

func (w *Wallet) unspent() []model.Output {
	outputs := make([]model.Output, 0, len(w.owned))
	for op, out := range w.owned {
		outputs = append(outputs, model.Output{
			OutPoint:      op,
			Value:         out.value,
			PkScript:      out.pkScript,
			Confirmations: w.tip - out.height + 1,
		})
	}
	slices.SortFunc(outputs, func(a, b model.Output) int {
		if c := bytes.Compare(a.OutPoint.Hash[:], b.OutPoint.Hash[:]); c != 0 {
			return c
		}
		return cmp.Compare(a.OutPoint.Index, b.OutPoint.Index)
	})
	return outputs
}

// AccountSnapshots encodes every account at the current tip.
func (w *Wallet) AccountSnapshots() ([]model.AccountSnapshot, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	now := w.clock.Now()
	snapshots := make([]model.AccountSnapshot, 0, len(w.order))
	for _, index := range w.order {
		account := w.accounts[index]
		doc, err := hdwallet.EncodeAccountSnapshot(account.Snapshot())
		if err != nil {
			return nil, fmt.Errorf("encode account %d: %w", index, err)
		}
		snapshots = append(snapshots, model.AccountSnapshot{
			WalletID:     w.id,
			AccountIndex: index,
			Name:         account.Name(),
			Height:       w.tip,
			Document:     doc,
			CreatedAt:    now,
		})
	}
	return snapshots, nil
}

// LogBalances logs every account and its used addresses.
func (w *Wallet) LogBalances() {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, index := range w.order {
		w.accounts[index].LogBalance()
	}
}

func (w *Wallet) publishBalance(index uint32, account *hdwallet.Account) {
	w.metrics.SetBalance(index, account.Balance(), account.Available())
}

func (w *Wallet) publishBalances() {
	for _, index := range w.order {
		w.publishBalance(index, w.accounts[index])
	}
}
