package ledger

import "time"

// Transaction is a ledger transaction as returned by the API. Amounts are
// signed milliunits: 1000 = one currency unit, negative = outflow.
type Transaction struct {
	ID                string           `json:"id"`
	AccountID         string           `json:"account_id"`
	Date              string           `json:"date"` // "YYYY-MM-DD"
	Amount            int64            `json:"amount"`
	PayeeID           string           `json:"payee_id,omitempty"`
	PayeeName         string           `json:"payee_name,omitempty"`
	CategoryID        string           `json:"category_id,omitempty"`
	Memo              string           `json:"memo,omitempty"`
	Cleared           string           `json:"cleared,omitempty"`
	Approved          bool             `json:"approved"`
	FlagColor         string           `json:"flag_color,omitempty"`
	ImportID          string           `json:"import_id,omitempty"`
	TransferAccountID string           `json:"transfer_account_id,omitempty"`
	Subtransactions   []SubTransaction `json:"subtransactions,omitempty"`
}

// ParsedDate returns the transaction date, or the zero time when the date
// string does not parse. Matching degrades to amount-only in that case.
func (t Transaction) ParsedDate() time.Time {
	d, err := time.Parse("2006-01-02", t.Date)
	if err != nil {
		return time.Time{}
	}
	return d
}

// SubTransaction is one split line of a transaction.
type SubTransaction struct {
	Amount     int64  `json:"amount"`
	CategoryID string `json:"category_id"`
	Memo       string `json:"memo,omitempty"`
}

// Category is a flattened budget category with its group name folded into
// the display name ("Group: Category").
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// internalMasterGroup is the ledger's bookkeeping group, excluded from
// category selection.
const internalMasterGroup = "Internal Master Category"

type categoryGroup struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Hidden     bool   `json:"hidden"`
	Categories []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Hidden  bool   `json:"hidden"`
		Deleted bool   `json:"deleted"`
	} `json:"categories"`
}

// flattenCategories folds category groups into a selectable list,
// skipping hidden groups, hidden or deleted categories, and the internal
// master group.
func flattenCategories(groups []categoryGroup) []Category {
	var cats []Category
	for _, g := range groups {
		if g.Hidden || g.Name == internalMasterGroup {
			continue
		}
		for _, c := range g.Categories {
			if c.Hidden || c.Deleted {
				continue
			}
			cats = append(cats, Category{
				ID:   c.ID,
				Name: g.Name + ": " + c.Name,
			})
		}
	}
	return cats
}
