package memo

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderlens-dev/orderlens/internal/model"
)

func TestOrderLink(t *testing.T) {
	g := NewGenerator("", 0)

	link := g.OrderLink("702-8237239-1234567")

	assert.Equal(t,
		"https://www.amazon.ca/gp/your-account/order-details?ie=UTF8&orderID=702-8237239-1234567",
		link)
}

func TestOrderLink_EmptyID(t *testing.T) {
	g := NewGenerator("", 0)
	assert.Empty(t, g.OrderLink(""))
}

func TestOrderLink_CustomDomain(t *testing.T) {
	g := NewGenerator("amazon.com", 0)

	link := g.OrderLink("702-8237239-1234567")

	assert.Contains(t, link, "amazon.com")
	assert.NotContains(t, link, "amazon.ca")
}

func TestSanitize_ShortPassthrough(t *testing.T) {
	g := NewGenerator("", 0)
	assert.Equal(t, "", g.Sanitize(""))
	assert.Equal(t, "Hello world", g.Sanitize("Hello world"))
}

func TestSanitize_TruncatesLongText(t *testing.T) {
	g := NewGenerator("", 0)

	got := g.Sanitize(strings.Repeat("A", 300))

	assert.LessOrEqual(t, len(got), DefaultMaxLength)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestSanitize_PreservesTrailingLink(t *testing.T) {
	g := NewGenerator("", 0)
	link := g.OrderLink("702-1234567-1234567")

	got := g.Sanitize(strings.Repeat("A", 300) + "\n" + link)

	assert.Contains(t, got, link)
	assert.LessOrEqual(t, len(got), DefaultMaxLength)
}

func TestSanitize_StripsControlChars(t *testing.T) {
	g := NewGenerator("", 0)

	got := g.Sanitize("Hello\x00World\x07Test\nKeep")

	assert.Equal(t, "HelloWorldTest\nKeep", got)
}

func TestSanitize_CustomMaxLength(t *testing.T) {
	g := NewGenerator("", 50)
	got := g.Sanitize(strings.Repeat("A", 100))
	assert.LessOrEqual(t, len(got), 50)
}

func TestSanitize_LimitCountsRunesNotBytes(t *testing.T) {
	g := NewGenerator("", 0)

	// Exactly at the limit in characters, over it in bytes.
	exact := strings.Repeat("é", DefaultMaxLength)
	assert.Equal(t, exact, g.Sanitize(exact))

	got := g.Sanitize(strings.Repeat("é", DefaultMaxLength+50))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, DefaultMaxLength, utf8.RuneCountInString(got))
}

func TestSanitize_PreservesTrailingLinkWithMultibyteHead(t *testing.T) {
	g := NewGenerator("", 0)
	link := g.OrderLink("702-1234567-1234567")

	got := g.Sanitize(strings.Repeat("é", 300) + "\n" + link)

	assert.Contains(t, got, link)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), DefaultMaxLength)
}

func TestEnhancedMemo_Basic(t *testing.T) {
	g := NewGenerator("", 0)

	got := g.EnhancedMemo("Test memo", "702-8237239-1234567", nil)

	assert.Contains(t, got, "Test memo")
	assert.Contains(t, got, "amazon.ca")
	assert.Contains(t, got, "702-8237239-1234567")
}

func TestEnhancedMemo_ItemDetails(t *testing.T) {
	g := NewGenerator("", 0)
	item := &ItemDetails{
		Title:    "USB Cable",
		Quantity: 2,
		Price:    decimal.RequireFromString("9.99"),
		HasPrice: true,
	}

	got := g.EnhancedMemo("", "702-8237239-1234567", item)

	assert.Contains(t, got, "USB Cable")
	assert.Contains(t, got, "x2")
	assert.Contains(t, got, "$9.99")
	assert.Contains(t, got, "amazon.ca")
}

func TestEnhancedMemo_ItemDetailsWithoutOrder(t *testing.T) {
	g := NewGenerator("", 0)
	item := &ItemDetails{
		Title:    "Keyboard",
		Quantity: 1,
		Price:    decimal.RequireFromString("49.99"),
		HasPrice: true,
	}

	got := g.EnhancedMemo("", "", item)

	assert.Contains(t, got, "Keyboard")
	assert.Contains(t, got, "$49.99")
	assert.NotContains(t, got, "amazon.ca")
}

func TestEnhancedMemo_AutoTruncated(t *testing.T) {
	g := NewGenerator("", 0)
	item := &ItemDetails{Title: strings.Repeat("A", 300)}

	got := g.EnhancedMemo("", "702-1234567-1234567", item)

	assert.LessOrEqual(t, len(got), DefaultMaxLength)
	assert.Contains(t, got, "702-1234567-1234567", "the order link survives truncation")
}

func TestItemMemo(t *testing.T) {
	g := NewGenerator("", 0)

	got := g.ItemMemo("Anker PowerLine Cable", "702-1234567-1234567")

	require.True(t, strings.HasPrefix(got, "Anker PowerLine Cable\n"))
	assert.Contains(t, got, "order-details")
}

func TestItemMemo_NoOrder(t *testing.T) {
	g := NewGenerator("", 0)
	assert.Equal(t, "Anker PowerLine Cable", g.ItemMemo("Anker PowerLine Cable", ""))
}

func TestSplitSummary_SingleItem(t *testing.T) {
	g := NewGenerator("", 0)
	order := model.Order{Items: []string{"Anker PowerLine Cable"}}

	assert.Equal(t, "Anker PowerLine Cable", g.SplitSummary(order))
}

func TestSplitSummary_MultipleItems(t *testing.T) {
	g := NewGenerator("", 0)
	order := model.Order{Items: []string{"First Item Thing", "Second Item Thing"}}

	got := g.SplitSummary(order)

	assert.Equal(t, "2 Items:\n- First Item Thing\n- Second Item Thing", got)
}

func TestSplitSummary_NoItems(t *testing.T) {
	g := NewGenerator("", 0)
	assert.Empty(t, g.SplitSummary(model.Order{}))
}
