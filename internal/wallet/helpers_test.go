package wallet

import (
	"bytes"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func testMasterKey(t *testing.T, params *chaincfg.Params) *hdkeychain.ExtendedKey {
	t.Helper()

	master, err := hdkeychain.NewMaster(bytes.Repeat([]byte{7}, 32), params)
	require.NoError(t, err)
	return master
}

type testWallet struct {
	*Wallet
	metrics *MockMetrics
}

func newTestWallet(t *testing.T, ctrl *gomock.Controller, minConf int64, opts ...func(*Config)) testWallet {
	t.Helper()

	metrics := NewMockMetrics(ctrl)
	metrics.EXPECT().SetBalance(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().ObserveApplyBlock(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().ObserveAddressesDerived(gomock.Any(), gomock.Any()).AnyTimes()

	cfg := Config{
		ID:               "w1",
		Network:          model.Regtest,
		MasterKey:        testMasterKey(t, &chaincfg.RegressionNetParams),
		MinConfirmations: minConf,
		Clock:            clock.NewTestClock(testTime),
		Metrics:          metrics,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	w, err := New(cfg)
	require.NoError(t, err)
	return testWallet{Wallet: w, metrics: metrics}
}

// receiveAddress derives the P2PKH receive address at index of an account independently of
// the wallet.
func receiveAddress(t *testing.T, account, index uint32) string {
	t.Helper()

	params := &chaincfg.RegressionNetParams
	accountKey, err := testMasterKey(t, params).Derive(hdkeychain.HardenedKeyStart + account)
	require.NoError(t, err)
	chainKey, err := accountKey.Derive(0)
	require.NoError(t, err)
	key, err := chainKey.Derive(index)
	require.NoError(t, err)
	addr, err := key.Address(params)
	require.NoError(t, err)
	return addr.EncodeAddress()
}

func payTo(t *testing.T, encoded string, value int64) *wire.TxOut {
	t.Helper()

	addr, err := btcutil.DecodeAddress(encoded, &chaincfg.RegressionNetParams)
	require.NoError(t, err)
	script, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)
	return wire.NewTxOut(value, script)
}

func newTx(inputs []wire.OutPoint, outputs ...*wire.TxOut) *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	for i := range inputs {
		tx.AddTxIn(wire.NewTxIn(&inputs[i], nil, nil))
	}
	for _, out := range outputs {
		tx.AddTxOut(out)
	}
	return tx
}

func foreignInput(seed byte) []wire.OutPoint {
	var hash chainhash.Hash
	hash[0] = seed
	return []wire.OutPoint{{Hash: hash, Index: 0}}
}

func newBlock(height int64, txs ...*wire.MsgTx) *model.Block {
	var hash chainhash.Hash
	hash[0] = byte(height)
	hash[31] = 0xbb
	return &model.Block{
		Height:       height,
		Hash:         hash,
		Timestamp:    testTime,
		Transactions: txs,
	}
}
