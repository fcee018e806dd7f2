// Package coinselect implements the default coin selection used by account-scoped selectors.
package coinselect

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
)

// ErrInsufficientFunds is returned when the candidates cannot cover the target.
type ErrInsufficientFunds struct {
	Target    btcutil.Amount
	Available btcutil.Amount
}

func (e *ErrInsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds: need %v, only %v available", e.Target, e.Available)
}

// Selector prefers deeply confirmed outputs and, among equally confirmed ones, larger values.
type Selector struct{}

// New returns the default selector.
func New() *Selector {
	return &Selector{}
}

// Select accumulates arranged candidates until their total reaches target.
func (s *Selector) Select(target btcutil.Amount, candidates []model.Output) (*model.Selection, error) {
	if target <= 0 {
		return &model.Selection{}, nil
	}

	arranged := slices.Clone(candidates)
	slices.SortStableFunc(arranged, compareOutputs)

	var total btcutil.Amount
	for i, out := range arranged {
		total += out.Value
		if total >= target {
			return &model.Selection{Outputs: arranged[:i+1], Total: total}, nil
		}
	}
	return nil, &ErrInsufficientFunds{Target: target, Available: total}
}

func compareOutputs(a, b model.Output) int {
	if c := cmp.Compare(b.Confirmations, a.Confirmations); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Value, a.Value); c != 0 {
		return c
	}
	if c := bytes.Compare(a.OutPoint.Hash[:], b.OutPoint.Hash[:]); c != 0 {
		return c
	}
	return cmp.Compare(a.OutPoint.Index, b.OutPoint.Index)
}
