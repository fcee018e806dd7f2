package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/pkg/batcher"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/pkg/workerpool"
	"go.uber.org/zap"
)

// Follower feeds new blocks from a node into the wallet and persists what changed.
type Follower struct {
	logger            *zap.Logger
	engine            Engine
	source            BlockSource
	repo              Repository
	metrics           FollowerMetrics
	sleep             func(context.Context, time.Duration) error
	sleepDuration     time.Duration
	idleSleepDuration time.Duration
	workerCount       int
	batchSize         int

	snapshots *batcher.Batcher[model.AccountSnapshot]
	// pending holds transactions applied to the engine but not yet persisted.
	pending []model.WalletTransaction
	// changed is set while account changes reported by the engine are not queued yet.
	changed bool
}

// FollowerOption customizes a Follower.
type FollowerOption func(*Follower)

// WithWorkerCount sets how many blocks are fetched concurrently.
func WithWorkerCount(n int) FollowerOption {
	return func(f *Follower) {
		if n > 0 {
			f.workerCount = n
		}
	}
}

// WithBatchSize sets the maximum number of blocks applied per iteration.
func WithBatchSize(n int) FollowerOption {
	return func(f *Follower) {
		if n > 0 {
			f.batchSize = n
		}
	}
}

// WithSleep replaces the function the follower waits with between iterations.
func WithSleep(sleep func(context.Context, time.Duration) error) FollowerOption {
	return func(f *Follower) {
		if sleep != nil {
			f.sleep = sleep
		}
	}
}

// NewFollower builds a Follower with dependencies.
func NewFollower(
	engine Engine,
	source BlockSource,
	repo Repository,
	metrics FollowerMetrics,
	logger *zap.Logger,
	opts ...FollowerOption,
) (*Follower, error) {
	if metrics == nil {
		return nil, errors.New("follower metrics is required")
	}
	if engine == nil || source == nil || repo == nil {
		return nil, errors.New("follower engine, source and repository are required")
	}

	f := &Follower{
		logger:            logger,
		engine:            engine,
		source:            source,
		repo:              repo,
		metrics:           metrics,
		sleep:             clock.SleepWithContext,
		sleepDuration:     sleepDuration,
		idleSleepDuration: idleSleepDuration,
		workerCount:       defaultFetchWorkers,
		batchSize:         defaultBatchSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.snapshots = batcher.New(
		logger.Named("snapshotBatcher"),
		repo.InsertAccountSnapshots,
		snapshotBatcherCapacity,
		snapshotBatcherFlushInterval,
		snapshotBatcherRPS,
		batcher.WithKey(snapshotKey),
	)
	return f, nil
}

func snapshotKey(s model.AccountSnapshot) string {
	return fmt.Sprintf("%s/%d", s.WalletID, s.AccountIndex)
}

// Run follows the node until the context is canceled. Account changes still unsaved at that
// point are written before it returns.
func (f *Follower) Run(ctx context.Context) error {
	f.snapshots.Start(ctx)
	defer func() {
		f.snapshots.Stop()
		f.persistChanges(context.WithoutCancel(ctx))
	}()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := f.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			f.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", f.sleepDuration))
			if sleepErr := f.sleep(ctx, f.sleepDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (f *Follower) run(ctx context.Context) error {
	if err := f.flushPending(ctx); err != nil {
		return err
	}

	started := time.Now()
	tip, err := f.source.LatestHeight(ctx)
	f.metrics.ObserveFetchTip(err, started)
	if err != nil {
		f.logger.Error("fetch tip failed", zap.Error(err))
		return err
	}

	next := f.engine.Height() + 1
	if next > tip {
		if f.engine.TakeChanged() || f.changed {
			f.changed = true
			if err := f.queueSnapshots(ctx); err != nil {
				return err
			}
			f.changed = false
		}
		f.logger.Debug("wallet is at the tip; sleeping", zap.Int64("height", tip), zap.Duration("sleep", f.idleSleepDuration))
		return f.sleep(ctx, f.idleSleepDuration)
	}

	last := min(tip, next+int64(f.batchSize)-1)
	heights := make([]int64, 0, last-next+1)
	for h := next; h <= last; h++ {
		heights = append(heights, h)
	}

	f.logger.Info("applying blocks", zap.Int64("from", next), zap.Int64("to", last), zap.Int64("tip", tip))
	started = time.Now()
	err = f.processBatch(ctx, heights)
	f.metrics.ObserveProcessBatch(err, len(heights), started)
	if err != nil {
		return err
	}

	if last < tip {
		return nil
	}
	return f.sleep(ctx, f.sleepDuration)
}

func (f *Follower) processBatch(ctx context.Context, heights []int64) error {
	blocks, err := workerpool.Map(ctx, f.workerCount, heights, f.source.FetchBlock)
	if err != nil {
		return fmt.Errorf("fetch blocks: %w", err)
	}

	for _, block := range blocks {
		relevant, err := f.engine.ApplyBlock(block)
		f.pending = append(f.pending, relevant...)
		if err != nil {
			return fmt.Errorf("apply block %d: %w", block.Height, err)
		}
		if err := f.flushPending(ctx); err != nil {
			return err
		}
	}

	return f.queueSnapshots(ctx)
}

func (f *Follower) flushPending(ctx context.Context) error {
	if len(f.pending) == 0 {
		return nil
	}
	if err := f.repo.InsertWalletTransactions(ctx, f.pending); err != nil {
		return fmt.Errorf("insert %d wallet transactions: %w", len(f.pending), err)
	}
	f.logger.Debug("wallet transactions persisted", zap.Int("count", len(f.pending)))
	f.pending = nil
	return nil
}

func (f *Follower) queueSnapshots(ctx context.Context) error {
	snapshots, err := f.engine.AccountSnapshots()
	if err != nil {
		return fmt.Errorf("snapshot accounts: %w", err)
	}
	for _, snap := range snapshots {
		if err := f.snapshots.Add(ctx, snap); err != nil {
			return err
		}
	}
	return nil
}

// persistChanges writes the account snapshots synchronously when accounts changed after the
// last queued snapshot.
func (f *Follower) persistChanges(ctx context.Context) {
	if !f.engine.TakeChanged() && !f.changed {
		return
	}
	snapshots, err := f.engine.AccountSnapshots()
	if err != nil {
		f.logger.Error("snapshot accounts on shutdown", zap.Error(err))
		return
	}
	if err := f.repo.InsertAccountSnapshots(ctx, snapshots); err != nil {
		f.logger.Error("persist account snapshots on shutdown", zap.Error(err))
		return
	}
	f.logger.Info("account snapshots persisted on shutdown", zap.Int("accounts", len(snapshots)))
}
