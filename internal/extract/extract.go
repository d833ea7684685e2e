// Package extract turns raw pasted order-history text into Order records.
//
// Segmentation happens in two independent stages: an anchor finder locates
// order headers and block boundaries, then a line classifier pulls item
// descriptions out of each block. Malformed input never fails extraction;
// it degrades to fewer or partial orders.
package extract

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/orderlens-dev/orderlens/internal/model"
)

// orderDateFormat is the long-form date printed on order-history pages.
const orderDateFormat = "January 2, 2006"

// DefaultMaxItems caps item lines kept per order; more than this makes
// memos unwieldy.
const DefaultMaxItems = 10

// Options configures an Extractor.
type Options struct {
	// MaxItems caps item lines kept per order. Zero means
	// DefaultMaxItems.
	MaxItems int
	// Logger receives per-order diagnostics. The zero value logs
	// nothing.
	Logger zerolog.Logger
}

// Extractor parses pasted order-history text into Orders.
type Extractor struct {
	maxItems int
	log      zerolog.Logger
}

// New creates an Extractor.
func New(opts Options) *Extractor {
	maxItems := opts.MaxItems
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Extractor{maxItems: maxItems, log: opts.Logger}
}

// Parse extracts orders from raw order-history text. A block whose total
// cannot be parsed is dropped whole; a block with no recognizable item
// lines is kept as a partial order, since amount/date matching does not
// need items.
func (e *Extractor) Parse(text string) []model.Order {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	anchors := findAnchors(text)
	var orders []model.Order
	for i, a := range anchors {
		total, err := decimal.NewFromString(a.total)
		if err != nil {
			e.log.Warn().Str("order_id", a.id).Str("total", a.total).
				Msg("dropping order block with unparseable total")
			continue
		}

		end := len(text)
		if i+1 < len(anchors) {
			end = anchors[i+1].start
		}
		items := extractItems(text[a.end:end], e.maxItems)

		date, err := time.Parse(orderDateFormat, strings.TrimSpace(a.date))
		if err != nil {
			date = time.Time{}
		}

		if len(items) == 0 {
			e.log.Info().Str("order_id", a.id).Str("total", total.StringFixed(2)).
				Msg("order parsed without items; it can still match by amount and date")
		}

		orders = append(orders, model.Order{
			ID:    a.id,
			Total: total,
			Date:  date,
			Items: items,
		})
	}
	return orders
}
