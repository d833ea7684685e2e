package model

// Split is one category allocation within a split transaction.
// Amount is in signed milliunits and shares the sign of the parent
// transaction.
type Split struct {
	Amount     int64
	CategoryID string
	Memo       string
}
