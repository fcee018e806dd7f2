package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
)

const insertAccountSnapshotsQuery = `
INSERT INTO hdwallet_account_snapshots (
	wallet_id,
	account_index,
	name,
	height,
	document,
	created_at
) VALUES`

const latestAccountSnapshotsQuery = `
SELECT
	account_index,
	argMax(name, created_at) AS name,
	argMax(height, created_at) AS height,
	argMax(document, created_at) AS document,
	max(created_at) AS created_at
FROM hdwallet_account_snapshots
WHERE wallet_id = ?
GROUP BY account_index
ORDER BY account_index`

// InsertAccountSnapshots stores account documents. Older documents of the same account are
// superseded by newer created_at values.
func (r *Repository) InsertAccountSnapshots(ctx context.Context, snapshots []model.AccountSnapshot) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_account_snapshots", firstWalletID(snapshots), err, start)
	}()

	if len(snapshots) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertAccountSnapshotsQuery)
	if err != nil {
		return fmt.Errorf("prepare account snapshots batch: %w", err)
	}

	for _, snap := range snapshots {
		if err = batch.Append(
			snap.WalletID,
			snap.AccountIndex,
			snap.Name,
			snap.Height,
			string(snap.Document),
			snap.CreatedAt,
		); err != nil {
			return fmt.Errorf("append account snapshot: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert account snapshots: %w", err)
	}
	return nil
}

// LatestAccountSnapshots returns the newest document of every account of a wallet.
func (r *Repository) LatestAccountSnapshots(ctx context.Context, walletID string) (snapshots []model.AccountSnapshot, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("latest_account_snapshots", walletID, err, start)
	}()

	rows, err := r.conn.Query(ctx, latestAccountSnapshotsQuery, walletID)
	if err != nil {
		return nil, fmt.Errorf("query account snapshots: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var (
			snap     = model.AccountSnapshot{WalletID: walletID}
			document string
		)
		if err = rows.Scan(&snap.AccountIndex, &snap.Name, &snap.Height, &document, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account snapshot: %w", err)
		}
		snap.Document = []byte(document)
		snapshots = append(snapshots, snap)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account snapshots: %w", err)
	}

	return snapshots, nil
}
