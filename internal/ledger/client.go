// Package ledger is the HTTP client for the budget ledger API: typed
// error mapping, bounded retry, and the transaction/category endpoints the
// reconciliation flow needs.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public ledger API root.
const DefaultBaseURL = "https://api.ynab.com/v1"

const (
	requestTimeout = 30 * time.Second
	maxAttempts    = 3
	backoffFactor  = 500 * time.Millisecond
)

// Options configures a Client.
type Options struct {
	BaseURL    string // empty = DefaultBaseURL
	Token      string
	BudgetID   string
	HTTPClient *http.Client   // nil = default client with 30s timeout
	Logger     zerolog.Logger // zero value logs nothing
}

// Client talks to the ledger API for one budget.
type Client struct {
	baseURL  string
	token    string
	budgetID string
	http     *http.Client
	log      zerolog.Logger
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{
		baseURL:  baseURL,
		token:    opts.Token,
		budgetID: opts.BudgetID,
		http:     httpClient,
		log:      opts.Logger,
	}
}

// Transactions fetches all transactions for the budget, or for one
// account when accountID is non-empty.
func (c *Client) Transactions(ctx context.Context, accountID string) ([]Transaction, error) {
	path := fmt.Sprintf("/budgets/%s/transactions", c.budgetID)
	if accountID != "" {
		path = fmt.Sprintf("/budgets/%s/accounts/%s/transactions", c.budgetID, accountID)
	}

	var data struct {
		Transactions []Transaction `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	c.log.Info().Int("count", len(data.Transactions)).Msg("fetched transactions")
	return data.Transactions, nil
}

// Categories fetches the budget's selectable categories, flattened with
// group names.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	path := fmt.Sprintf("/budgets/%s/categories", c.budgetID)

	var data struct {
		CategoryGroups []categoryGroup `json:"category_groups"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return flattenCategories(data.CategoryGroups), nil
}

// UpdateTransaction applies a categorization update to one transaction.
func (c *Client) UpdateTransaction(ctx context.Context, transactionID string, update TransactionUpdate) error {
	path := fmt.Sprintf("/budgets/%s/transactions/%s", c.budgetID, transactionID)
	body := struct {
		Transaction TransactionUpdate `json:"transaction"`
	}{update}
	return c.do(ctx, http.MethodPut, path, body, nil)
}

// do performs one API call, retrying throttled and server-side failures
// with exponential backoff. On success the response envelope's "data"
// field is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			backoff := backoffFactor << (attempt - 2)
			c.log.Warn().Int("attempt", attempt).Dur("backoff", backoff).
				Str("path", path).Msg("retrying ledger request")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("ledger request %s %s: %w", method, path, err)
		}
		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if retryable(resp.StatusCode) {
			lastErr = statusError(resp.StatusCode, errorDetail(respBody))
			continue
		}
		if err := statusError(resp.StatusCode, errorDetail(respBody)); err != nil {
			return err
		}

		if out != nil {
			var envelope struct {
				Data json.RawMessage `json:"data"`
			}
			if err := json.Unmarshal(respBody, &envelope); err != nil {
				return fmt.Errorf("decoding response: %w", err)
			}
			if envelope.Data == nil {
				return fmt.Errorf("response for %s has no data", path)
			}
			if err := json.Unmarshal(envelope.Data, out); err != nil {
				return fmt.Errorf("decoding response data: %w", err)
			}
		}
		return nil
	}
	return lastErr
}

// retryable statuses mirror the transport retry policy: throttling and
// transient server errors.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// errorDetail pulls the error detail out of an API error envelope,
// falling back to the raw body.
func errorDetail(body []byte) string {
	var envelope struct {
		Error struct {
			Detail string `json:"detail"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Detail != "" {
		return envelope.Error.Detail
	}
	return string(body)
}
