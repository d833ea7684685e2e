// Package match selects the order best corresponding to a ledger
// transaction. Amount is a hard filter; date proximity only ranks orders
// that already match on amount.
package match

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderlens-dev/orderlens/internal/model"
)

const (
	amountScore   = 100
	sameDayBonus  = 30 // day difference <= 1
	nearBonus     = 15 // day difference <= 3
	sameWeekBonus = 5  // day difference <= 7
)

// oneCent is the exclusive bound for an exact amount match.
var oneCent = decimal.New(1, -2)

// unknownDiff ranks candidates without a comparable date pair after every
// known day difference.
const unknownDiff = math.MaxInt

// Match returns the order best matching a transaction, or nil when no
// order qualifies. amount is the signed transaction amount in milliunits;
// a zero date means the transaction date is unknown. The result does not
// depend on the ordering of the candidates.
func Match(amount int64, date time.Time, orders []model.Order) *model.Order {
	target := model.FromMilliunits(model.AbsMilliunits(amount))

	best := -1
	bestScore := 0
	bestDiff := unknownDiff
	for i, o := range orders {
		if o.Total.Sub(target).Abs().GreaterThanOrEqual(oneCent) {
			continue
		}

		score := amountScore
		diff := unknownDiff
		if !date.IsZero() && o.HasDate() {
			diff = dayDiff(date, o.Date)
			switch {
			case diff <= 1:
				score += sameDayBonus
			case diff <= 3:
				score += nearBonus
			case diff <= 7:
				score += sameWeekBonus
			}
		}

		if best < 0 || better(score, diff, o.ID, bestScore, bestDiff, orders[best].ID) {
			best, bestScore, bestDiff = i, score, diff
		}
	}

	if best < 0 {
		return nil
	}
	winner := orders[best]
	return &winner
}

// better reports whether candidate a outranks candidate b: higher score
// first, then smaller known day difference (a missing difference never
// beats a known one), then lexicographically smaller order id so the
// winner is deterministic regardless of input order.
func better(scoreA, diffA int, idA string, scoreB, diffB int, idB string) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	if diffA != diffB {
		return diffA < diffB
	}
	return idA < idB
}

// dayDiff returns the absolute whole-day difference between two dates.
func dayDiff(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
