// Package split allocates a transaction's signed milliunit amount across
// category splits with exact fixed-point arithmetic. Allocate is called
// once per split line; the caller subtracts each result from the running
// remainder until it reaches exactly zero.
package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/orderlens-dev/orderlens/internal/model"
)

// snapTolerance is the milliunit drift absorbed when a split lands within
// rounding distance of the remaining balance.
const snapTolerance = 1

// ExceededError reports a split amount larger than the remaining balance.
// The caller should re-prompt with the reported maximum.
type ExceededError struct {
	// Max is the largest amount still allocatable, in currency units.
	Max decimal.Decimal
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("amount exceeds remaining balance; max %s", e.Max.StringFixed(2))
}

// Allocate converts a positive user-entered amount into a signed milliunit
// split against the remaining balance. The result carries the sign of
// remaining (the allocator never flips the parent's direction), and snaps
// to remaining exactly when within one milliunit so the final split in a
// sequence always closes the balance to zero.
func Allocate(amount decimal.Decimal, remaining int64) (int64, error) {
	m := model.ToMilliunits(amount)
	limit := model.AbsMilliunits(remaining)

	// +1 tolerates rounding noise right at the boundary.
	if m > limit+snapTolerance {
		return 0, &ExceededError{Max: model.FromMilliunits(limit)}
	}

	if remaining < 0 {
		m = -model.AbsMilliunits(m)
	} else {
		m = model.AbsMilliunits(m)
	}

	if diff := model.AbsMilliunits(m) - limit; -snapTolerance <= diff && diff <= snapTolerance {
		m = remaining
	}

	return m, nil
}

// FoldResidual folds a negligible remainder (at most one milliunit either
// way) into the most recent split so the full sequence sums exactly to the
// parent amount. It returns the remainder still outstanding; zero means
// the balance is closed.
func FoldResidual(splits []model.Split, remaining int64) int64 {
	if remaining == 0 || len(splits) == 0 {
		return remaining
	}
	if model.AbsMilliunits(remaining) > snapTolerance {
		return remaining
	}
	splits[len(splits)-1].Amount += remaining
	return 0
}
