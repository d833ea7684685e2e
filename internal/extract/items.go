package extract

import (
	"regexp"
	"strings"
)

// minItemLength is the shortest line worth considering as a product
// description; kept items must exceed it after normalization.
const minItemLength = 15

// skipPatterns match order-page chrome that never describes a product.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(Buy it again|Track package|View|Return|Write|Get|Share|Leave|Ask)`),
	regexp.MustCompile(`(?i)^(Delivered|Arriving|Auto-delivered|Package was)`),
	regexp.MustCompile(`(?i)^(Return items:|Return or replace)`),
	regexp.MustCompile(`(?i)^\d+\.?\d* out of \d+ stars`),
	regexp.MustCompile(`(?i)^FREE|^Today by|^Get it|^List:|^Was:|^Limited-time deal`),
	regexp.MustCompile(`^\$\d+\.\d+|^\(\$\d+\.\d+`),
	regexp.MustCompile(`(?i)^\d+ sustainability features?$`),
	regexp.MustCompile(`^[A-Z\s]+$`), // all-uppercase banner lines
	regexp.MustCompile(`(?i)^(Ship to|Order #|View order|Invoice)`),
}

// unitKeywords are quantity/size words that strongly suggest a product
// description. Substring match on the lowercased line.
var unitKeywords = []string{"pack", "count", "size", "oz", "ml", "lbs", "kg", "inch", "cm"}

// navWords reject lines that slipped through but belong to site
// navigation.
var navWords = []string{"account", "orders", "cart", "search", "hello", "browse", "prime", "shipping"}

var (
	spaceRuns    = regexp.MustCompile(`\s+`)
	bulletPrefix = regexp.MustCompile(`^[-•]\s*`)
	// A lowercase-to-uppercase transition inside the line, typical of
	// product names ("Anker USB-C Cable").
	capsTransition = regexp.MustCompile(`[A-Z][a-z].*[A-Z]`)
)

// extractItems pulls product-description lines out of one order block,
// de-duplicated and capped at maxItems. Order of appearance is preserved.
func extractItems(content string, maxItems int) []string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < minItemLength {
			continue
		}
		if matchesAnySkip(line) {
			continue
		}
		if !looksLikeProduct(line) {
			continue
		}

		cleaned := spaceRuns.ReplaceAllString(line, " ")
		cleaned = bulletPrefix.ReplaceAllString(cleaned, "")
		if containsAnyWord(strings.ToLower(cleaned), navWords) {
			continue
		}
		kept = append(kept, cleaned)
	}

	seen := make(map[string]bool, len(kept))
	var unique []string
	for _, item := range kept {
		if seen[item] || len(item) <= minItemLength {
			continue
		}
		seen[item] = true
		unique = append(unique, item)
		if len(unique) >= maxItems {
			break
		}
	}
	return unique
}

// looksLikeProduct reports whether a line carries product-description
// signals: a unit keyword, an internal capitalization transition, or at
// least five words.
func looksLikeProduct(line string) bool {
	if containsAnyWord(strings.ToLower(line), unitKeywords) {
		return true
	}
	if capsTransition.MatchString(line) {
		return true
	}
	return len(strings.Fields(line)) >= 5
}

func matchesAnySkip(line string) bool {
	for _, p := range skipPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func containsAnyWord(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
