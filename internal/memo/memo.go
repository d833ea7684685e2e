// Package memo builds and sanitizes transaction memos that reference
// matched retail orders.
package memo

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/orderlens-dev/orderlens/internal/model"
)

// DefaultMaxLength is the ledger's memo character limit.
const DefaultMaxLength = 200

// DefaultDomain is the storefront used for order-details links.
const DefaultDomain = "amazon.ca"

const ellipsis = "..."

// ItemDetails holds manually entered item information for a memo.
type ItemDetails struct {
	Title    string
	Quantity int
	Price    decimal.Decimal
	HasPrice bool
}

// describe renders the item as a single memo line, e.g.
// "USB Cable x2 $9.99".
func (d ItemDetails) describe() string {
	var b strings.Builder
	b.WriteString(d.Title)
	if d.Quantity > 1 {
		fmt.Fprintf(&b, " x%d", d.Quantity)
	}
	if d.HasPrice {
		fmt.Fprintf(&b, " $%s", d.Price.StringFixed(2))
	}
	return strings.TrimSpace(b.String())
}

// Generator builds memos for one storefront with a fixed length limit.
type Generator struct {
	domain    string
	maxLength int
}

// NewGenerator creates a Generator. Empty domain and non-positive
// maxLength fall back to the defaults.
func NewGenerator(domain string, maxLength int) *Generator {
	if domain == "" {
		domain = DefaultDomain
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Generator{domain: domain, maxLength: maxLength}
}

// OrderLink returns the order-details URL for an order id, or "" when the
// id is empty.
func (g *Generator) OrderLink(orderID string) string {
	if orderID == "" {
		return ""
	}
	return fmt.Sprintf("https://www.%s/gp/your-account/order-details?ie=UTF8&orderID=%s", g.domain, orderID)
}

// EnhancedMemo combines an existing memo, optional item details, and an
// order link into a sanitized memo.
func (g *Generator) EnhancedMemo(original, orderID string, item *ItemDetails) string {
	var parts []string
	if original != "" {
		parts = append(parts, original)
	}
	if item != nil {
		if line := item.describe(); line != "" {
			parts = append(parts, line)
		}
	}
	if link := g.OrderLink(orderID); link != "" {
		parts = append(parts, link)
	}
	return g.Sanitize(strings.Join(parts, "\n"))
}

// ItemMemo builds the memo for a single split line: the item text with the
// order link on its own trailing line.
func (g *Generator) ItemMemo(item, orderID string) string {
	link := g.OrderLink(orderID)
	if link == "" {
		return g.Sanitize(item)
	}
	return g.Sanitize(item + "\n" + link)
}

// SplitSummary describes all items of a matched order, used as the parent
// memo of a split transaction.
func (g *Generator) SplitSummary(order model.Order) string {
	if len(order.Items) == 0 {
		return ""
	}
	if len(order.Items) == 1 {
		return g.Sanitize(order.Items[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d Items:", len(order.Items))
	for _, item := range order.Items {
		b.WriteString("\n- ")
		b.WriteString(item)
	}
	return g.Sanitize(b.String())
}

// Sanitize strips control characters (newlines excepted) and enforces the
// length limit. When the memo ends with a URL on its own line the URL
// survives truncation in preference to leading text.
func (g *Generator) Sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)

	if utf8.RuneCountInString(s) <= g.maxLength {
		return s
	}

	if i := strings.LastIndex(s, "\n"); i >= 0 {
		link := s[i+1:]
		if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
			head := g.maxLength - utf8.RuneCountInString(link) - len(ellipsis) - 1
			if head > 0 {
				return truncate(s, head) + ellipsis + "\n" + link
			}
		}
	}
	return truncate(s, g.maxLength-len(ellipsis)) + ellipsis
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
