package ledger

import "github.com/orderlens-dev/orderlens/internal/model"

// TransactionUpdate is the mutable view of a transaction sent back to the
// API. CategoryID is a pointer so a split parent can carry an explicit
// null category.
type TransactionUpdate struct {
	ID              string           `json:"id"`
	AccountID       string           `json:"account_id"`
	Date            string           `json:"date"`
	Amount          int64            `json:"amount"`
	PayeeID         string           `json:"payee_id,omitempty"`
	PayeeName       string           `json:"payee_name,omitempty"`
	CategoryID      *string          `json:"category_id"`
	Memo            string           `json:"memo,omitempty"`
	Cleared         string           `json:"cleared,omitempty"`
	Approved        bool             `json:"approved"`
	FlagColor       string           `json:"flag_color,omitempty"`
	ImportID        string           `json:"import_id,omitempty"`
	Subtransactions []SubTransaction `json:"subtransactions,omitempty"`
}

// SingleUpdate builds the update payload for a single-category
// categorization.
func SingleUpdate(t Transaction, categoryID, memo string) TransactionUpdate {
	u := baseUpdate(t)
	u.CategoryID = &categoryID
	u.Memo = memo
	return u
}

// SplitUpdate builds the update payload for a split categorization. The
// parent category is cleared; the splits carry the categories and must
// already sum exactly to the transaction amount.
func SplitUpdate(t Transaction, splits []model.Split, memo string) TransactionUpdate {
	u := baseUpdate(t)
	u.Memo = memo
	u.Subtransactions = make([]SubTransaction, len(splits))
	for i, s := range splits {
		u.Subtransactions[i] = SubTransaction{
			Amount:     s.Amount,
			CategoryID: s.CategoryID,
			Memo:       s.Memo,
		}
	}
	return u
}

func baseUpdate(t Transaction) TransactionUpdate {
	return TransactionUpdate{
		ID:        t.ID,
		AccountID: t.AccountID,
		Date:      t.Date,
		Amount:    t.Amount,
		PayeeID:   t.PayeeID,
		PayeeName: t.PayeeName,
		Cleared:   t.Cleared,
		Approved:  true,
		FlagColor: t.FlagColor,
		ImportID:  t.ImportID,
	}
}
