package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var retailKeywords = []string{"amazon", "amzn", "amz"}

func TestFilterRetail_KeepsEligible(t *testing.T) {
	txns := []Transaction{
		{ID: "t1", PayeeName: "AMZN Mktp CA", Amount: -57570},
		{ID: "t2", PayeeName: "Amazon.ca", Amount: -12990},
	}

	got := FilterRetail(txns, retailKeywords)

	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID)
}

func TestFilterRetail_DropsNonRetailPayee(t *testing.T) {
	txns := []Transaction{{ID: "t1", PayeeName: "Local Grocer", Amount: -5000}}
	assert.Empty(t, FilterRetail(txns, retailKeywords))
}

func TestFilterRetail_DropsIneligible(t *testing.T) {
	tests := []struct {
		name string
		txn  Transaction
	}{
		{"already categorized", Transaction{PayeeName: "amazon", Amount: -1000, CategoryID: "c1"}},
		{"reconciled", Transaction{PayeeName: "amazon", Amount: -1000, Cleared: "reconciled"}},
		{"zero amount", Transaction{PayeeName: "amazon", Amount: 0}},
		{"transfer", Transaction{PayeeName: "amazon", Amount: -1000, TransferAccountID: "a2"}},
		{"already split", Transaction{PayeeName: "amazon", Amount: -1000,
			Subtransactions: []SubTransaction{{Amount: -1000}}}},
		{"empty payee", Transaction{Amount: -1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, FilterRetail([]Transaction{tt.txn}, retailKeywords))
		})
	}
}

func TestFilterRetail_KeywordMatchIsCaseInsensitive(t *testing.T) {
	txns := []Transaction{{ID: "t1", PayeeName: "AMAZON.CA*ORDER", Amount: -1000}}
	assert.Len(t, FilterRetail(txns, retailKeywords), 1)
}

func TestParsedDate(t *testing.T) {
	assert.False(t, Transaction{Date: "2024-07-31"}.ParsedDate().IsZero())
	assert.True(t, Transaction{Date: "not-a-date"}.ParsedDate().IsZero())
	assert.True(t, Transaction{}.ParsedDate().IsZero())
}
