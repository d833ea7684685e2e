package ledger

import "strings"

// FilterRetail returns the transactions eligible for reconciliation: the
// payee matches one of the retail keywords, the transaction is
// uncategorized, not reconciled, non-zero, not a transfer, and not
// already split.
func FilterRetail(txns []Transaction, keywords []string) []Transaction {
	var out []Transaction
	for _, t := range txns {
		payee := strings.ToLower(t.PayeeName)
		matched := false
		for _, kw := range keywords {
			if kw != "" && strings.Contains(payee, strings.ToLower(kw)) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if t.CategoryID != "" || t.Cleared == "reconciled" || t.Amount == 0 {
			continue
		}
		if t.TransferAccountID != "" || len(t.Subtransactions) > 0 {
			continue
		}
		out = append(out, t)
	}
	return out
}
