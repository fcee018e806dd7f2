package bitcoin

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
)

// BlockSource reads blocks for the wallet follower from a bitcoin node.
type BlockSource struct {
	rpc RPCClient
}

// NewBlockSource creates a BlockSource on top of rpc.
func NewBlockSource(rpc RPCClient) *BlockSource {
	return &BlockSource{rpc: rpc}
}

// LatestHeight returns the height of the node's best block.
func (s *BlockSource) LatestHeight(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	return count, nil
}

// FetchBlock retrieves the block at height with all of its transactions.
func (s *BlockSource) FetchBlock(ctx context.Context, height int64) (*model.Block, error) {
	if height < 0 {
		return nil, fmt.Errorf("negative block height %d", height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := s.rpc.GetBlockHash(height)
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	msg, err := s.rpc.GetBlock(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}

	return &model.Block{
		Height:       height,
		Hash:         *hash,
		Timestamp:    msg.Header.Timestamp.UTC(),
		Transactions: msg.Transactions,
	}, nil
}
