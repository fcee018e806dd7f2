package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
)

const insertWalletTransactionsQuery = `
INSERT INTO hdwallet_transactions (
	wallet_id,
	txid,
	block_height,
	block_hash,
	position,
	raw_tx,
	created_at
) VALUES`

const walletTransactionsQuery = `
SELECT
	txid,
	block_height,
	block_hash,
	position,
	raw_tx,
	created_at
FROM hdwallet_transactions FINAL
WHERE wallet_id = ?
ORDER BY block_height, position`

// InsertWalletTransactions stores transactions that touched the wallet.
func (r *Repository) InsertWalletTransactions(ctx context.Context, txs []model.WalletTransaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_wallet_transactions", firstWalletID(txs), err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertWalletTransactionsQuery)
	if err != nil {
		return fmt.Errorf("prepare wallet transactions batch: %w", err)
	}

	for _, tx := range txs {
		if err = batch.Append(
			tx.WalletID,
			tx.TxID,
			tx.BlockHeight,
			tx.BlockHash,
			tx.Position,
			string(tx.RawTx),
			tx.CreatedAt,
		); err != nil {
			return fmt.Errorf("append wallet transaction: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert wallet transactions: %w", err)
	}
	return nil
}

// WalletTransactions returns the wallet history in chain order.
func (r *Repository) WalletTransactions(ctx context.Context, walletID string) (txs []model.WalletTransaction, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("wallet_transactions", walletID, err, start)
	}()

	rows, err := r.conn.Query(ctx, walletTransactionsQuery, walletID)
	if err != nil {
		return nil, fmt.Errorf("query wallet transactions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var (
			tx  = model.WalletTransaction{WalletID: walletID}
			raw string
		)
		if err = rows.Scan(&tx.TxID, &tx.BlockHeight, &tx.BlockHash, &tx.Position, &raw, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wallet transaction: %w", err)
		}
		tx.RawTx = []byte(raw)
		txs = append(txs, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet transactions: %w", err)
	}

	return txs, nil
}
