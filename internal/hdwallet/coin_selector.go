package hdwallet

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
	"go.uber.org/zap"
)

// AccountCoinSelector limits coin selection to outputs paying to one account.
type AccountCoinSelector struct {
	account  *Account
	delegate CoinSelector
	logger   *zap.Logger
}

// Select drops candidates the account does not own and lets the delegate pick from the rest.
// Candidates with unparseable scripts are skipped.
func (s *AccountCoinSelector) Select(target btcutil.Amount, candidates []model.Output) (*model.Selection, error) {
	owned := make([]model.Output, 0, len(candidates))
	for _, candidate := range candidates {
		pubKey, pubKeyHash, err := ParseScriptIdentity(candidate.PkScript, s.account.params)
		if err != nil {
			s.logger.Warn("skipping coin selection candidate",
				zap.Stringer("outpoint", candidate.OutPoint),
				zap.Error(err))
			continue
		}
		if s.account.HasPubKey(pubKey, pubKeyHash) {
			owned = append(owned, candidate)
		}
	}
	return s.delegate.Select(target, owned)
}
