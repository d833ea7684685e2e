package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/orderlens-dev/orderlens/internal/config"
	"github.com/orderlens-dev/orderlens/internal/extract"
	"github.com/orderlens-dev/orderlens/internal/ledger"
	"github.com/orderlens-dev/orderlens/internal/logging"
	"github.com/orderlens-dev/orderlens/internal/match"
	"github.com/orderlens-dev/orderlens/internal/memo"
	"github.com/orderlens-dev/orderlens/internal/model"
	"github.com/orderlens-dev/orderlens/internal/split"
)

func newCategorizeCommand() *cobra.Command {
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Match uncategorized retail transactions against pasted order history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := zerolog.Nop()
			if verbose {
				logger = logging.New()
			}

			s := newSession(cmd, cfg, logger)
			return s.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "orderlens.yaml", "config file path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log extraction and request diagnostics")

	return cmd
}

// loadConfig reads the config file; a missing file falls back to a pure
// environment-variable config.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.FromEnv(), nil
	}
	return cfg, err
}

// session drives one interactive reconciliation pass.
type session struct {
	prompter

	cfg       *config.Config
	client    *ledger.Client
	extractor *extract.Extractor
	memos     *memo.Generator

	orders     []model.Order
	categories []ledger.Category
	nameToID   map[string]string
	idToName   map[string]string
}

func newSession(cmd *cobra.Command, cfg *config.Config, logger zerolog.Logger) *session {
	return &session{
		prompter: newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
		cfg:      cfg,
		client: ledger.NewClient(ledger.Options{
			Token:    cfg.Token,
			BudgetID: cfg.Ledger.BudgetID,
			Logger:   logger,
		}),
		extractor: extract.New(extract.Options{
			MaxItems: cfg.Retail.MaxItems,
			Logger:   logger,
		}),
		memos: memo.NewGenerator(cfg.Retail.Domain, cfg.Retail.MemoMaxLength),
	}
}

func (s *session) run(ctx context.Context) error {
	s.printConfigSummary()

	categories, err := s.client.Categories(ctx)
	if err != nil {
		return fmt.Errorf("fetching categories: %w", err)
	}
	s.setCategories(categories)

	s.promptOrders()

	txns, err := s.client.Transactions(ctx, s.cfg.Ledger.AccountID)
	if err != nil {
		return fmt.Errorf("fetching transactions: %w", err)
	}
	eligible := ledger.FilterRetail(txns, s.cfg.Retail.PayeeKeywords)
	if len(eligible) == 0 {
		s.printf("No uncategorized retail transactions found.\n")
		return nil
	}

	s.printf("\nFound %d transactions to process.\n", len(eligible))
	for i, t := range eligible {
		cont, err := s.processTransaction(ctx, t, i+1, len(eligible))
		if err != nil {
			return err
		}
		if !cont {
			break
		}
	}
	return nil
}

func (s *session) printConfigSummary() {
	s.printf("Budget: %s\n", tail(s.cfg.Ledger.BudgetID, 4))
	if s.cfg.Ledger.AccountID != "" {
		s.printf("Account: %s\n", tail(s.cfg.Ledger.AccountID, 4))
	} else {
		s.printf("Account: all accounts\n")
	}
	s.printf("Storefront: %s\n", s.cfg.Retail.Domain)
}

func (s *session) setCategories(categories []ledger.Category) {
	s.categories = categories
	s.nameToID = make(map[string]string, len(categories))
	s.idToName = make(map[string]string, len(categories))
	for _, c := range categories {
		s.nameToID[strings.ToLower(c.Name)] = c.ID
		s.idToName[c.ID] = c.Name
	}
}

// promptOrders asks for pasted order-history text and extracts orders
// from it. Skipping is fine; matching then runs with no candidates.
func (s *session) promptOrders() {
	s.printf("\nPaste your order-history page below.\n")
	s.printf("Finish with a line containing only %q, or %q to skip.\n", endMarker, skipMarker)

	text, skipped := s.readMultiline()
	if skipped || strings.TrimSpace(text) == "" {
		s.printf("Skipping order data entry.\n")
		return
	}

	s.orders = s.extractor.Parse(text)
	if len(s.orders) == 0 {
		s.printf("No orders recognized in the pasted text.\n")
		return
	}

	s.printf("\nParsed %d orders:\n", len(s.orders))
	for i, o := range s.orders {
		if i >= 3 {
			s.printf("  ... and %d more\n", len(s.orders)-3)
			break
		}
		s.printf("  %s  $%s  (%d items)\n", o.ID, o.Total.StringFixed(2), len(o.Items))
	}
}

// processTransaction runs the interactive flow for one transaction.
// Returns false when the user quits.
func (s *session) processTransaction(ctx context.Context, t ledger.Transaction, index, total int) (bool, error) {
	s.printf("\n--- Transaction %d of %d ---\n", index, total)
	s.printf("Date:   %s\n", t.Date)
	s.printf("Payee:  %s\n", t.PayeeName)
	s.printf("Amount: %s\n", model.FromMilliunits(t.Amount).StringFixed(2))
	if t.Memo != "" {
		s.printf("Memo:   %s\n", t.Memo)
	}

	matched := match.Match(t.Amount, t.ParsedDate(), s.orders)
	if matched != nil {
		s.displayOrder(*matched)
	}

	for {
		choice, ok := s.readLine("[c]ategorize, [s]plit, s[k]ip, [q]uit: ")
		if !ok {
			return false, nil
		}
		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "c", "":
			if err := s.categorizeSingle(ctx, t, matched); err != nil {
				return false, err
			}
			return true, nil
		case "s":
			if err := s.categorizeSplit(ctx, t, matched); err != nil {
				return false, err
			}
			return true, nil
		case "k":
			return true, nil
		case "q":
			return false, nil
		}
	}
}

func (s *session) displayOrder(o model.Order) {
	s.printf("\nMatched order %s ($%s", o.ID, o.Total.StringFixed(2))
	if o.HasDate() {
		s.printf(", placed %s", o.Date.Format("January 2, 2006"))
	}
	s.printf(")\n")
	for _, item := range o.Items {
		s.printf("  - %s\n", item)
	}
	if link := s.memos.OrderLink(o.ID); link != "" {
		s.printf("  %s\n", link)
	}
}

// categorizeSingle applies one category to the whole transaction.
func (s *session) categorizeSingle(ctx context.Context, t ledger.Transaction, matched *model.Order) error {
	_, categoryID, ok := s.promptCategory("Category: ")
	if !ok {
		s.printf("Cancelled.\n")
		return nil
	}

	memoText := s.resolveMemo(t, matched)
	update := ledger.SingleUpdate(t, categoryID, memoText)
	return s.applyUpdate(ctx, t.ID, update)
}

// resolveMemo suggests a memo from the matched order and lets the user
// override it. When nothing matched it offers manual item-details entry
// instead.
func (s *session) resolveMemo(t ledger.Transaction, matched *model.Order) string {
	suggested := ""
	if matched != nil {
		switch len(matched.Items) {
		case 0:
			suggested = s.memos.EnhancedMemo(t.Memo, matched.ID, nil)
		case 1:
			suggested = s.memos.ItemMemo(matched.Items[0], matched.ID)
		default:
			suggested = s.memos.ItemMemo(s.memos.SplitSummary(*matched), matched.ID)
		}
	} else {
		answer, _ := s.readLine("No order matched. Enter item details manually? [y/N]: ")
		if strings.EqualFold(strings.TrimSpace(answer), "y") {
			if details := s.promptItemDetails(); details != nil {
				suggested = s.memos.EnhancedMemo(t.Memo, "", details)
			}
		}
	}

	if suggested != "" {
		s.printf("Suggested memo:\n%s\n", suggested)
		answer, _ := s.readLine("Use suggested memo? [Y/n]: ")
		if !strings.EqualFold(strings.TrimSpace(answer), "n") {
			return suggested
		}
	}

	custom, ok := s.readLine("Memo (empty keeps the existing one): ")
	if !ok || strings.TrimSpace(custom) == "" {
		return s.memos.Sanitize(t.Memo)
	}
	return s.memos.Sanitize(custom)
}

// categorizeSplit walks the split entry loop until the remaining balance
// reaches exactly zero, then applies the update.
func (s *session) categorizeSplit(ctx context.Context, t ledger.Transaction, matched *model.Order) error {
	splits, ok := s.splitFlow(t, matched)
	if !ok {
		s.printf("Cancelled split.\n")
		return nil
	}

	parentMemo := s.memos.Sanitize(t.Memo)
	if matched != nil {
		if summary := s.memos.SplitSummary(*matched); summary != "" {
			parentMemo = summary
		}
	}

	update := ledger.SplitUpdate(t, splits, parentMemo)
	return s.applyUpdate(ctx, t.ID, update)
}

// splitFlow collects splits until the running remainder is exactly zero.
// A remainder within one milliunit after a step is folded into the last
// split rather than prompted for.
func (s *session) splitFlow(t ledger.Transaction, matched *model.Order) ([]model.Split, bool) {
	remaining := t.Amount
	var splits []model.Split

	for n := 1; remaining != 0; n++ {
		s.printf("\nSplit %d: amount remaining %s\n",
			n, model.FromMilliunits(model.AbsMilliunits(remaining)).StringFixed(2))
		if matched != nil {
			if n <= len(matched.Items) {
				s.printf("Item %d: %s\n", n, matched.Items[n-1])
			} else {
				s.printf("Additional split for remaining items\n")
			}
		}

		_, categoryID, ok := s.promptCategory(fmt.Sprintf("Category for split %d: ", n))
		if !ok {
			return nil, false
		}

		amount, ok := s.promptSplitAmount(remaining)
		if !ok {
			return nil, false
		}
		if amount == remaining {
			s.printf("Amount covers the remaining balance.\n")
		}

		splits = append(splits, model.Split{
			Amount:     amount,
			CategoryID: categoryID,
			Memo:       s.splitMemo(matched, n),
		})
		remaining -= amount
		remaining = split.FoldResidual(splits, remaining)
	}

	return splits, true
}

// splitMemo resolves the memo for one split line: the matched item with
// its order link, or a free-form entry when nothing matched.
func (s *session) splitMemo(matched *model.Order, n int) string {
	if matched != nil {
		if n <= len(matched.Items) {
			return s.memos.ItemMemo(matched.Items[n-1], matched.ID)
		}
		return "Additional item"
	}
	text, _ := s.readLine("Optional memo for this split: ")
	return s.memos.Sanitize(strings.TrimSpace(text))
}

func (s *session) applyUpdate(ctx context.Context, transactionID string, update ledger.TransactionUpdate) error {
	s.printPreview(update)
	answer, _ := s.readLine("Apply this update? [Y/n]: ")
	if strings.EqualFold(strings.TrimSpace(answer), "n") {
		s.printf("Skipped.\n")
		return nil
	}

	if err := s.client.UpdateTransaction(ctx, transactionID, update); err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}
	s.printf("Updated.\n")
	return nil
}

// printPreview shows the pending update with category ids resolved back
// to names.
func (s *session) printPreview(update ledger.TransactionUpdate) {
	s.printf("\nPending update:\n")
	if update.CategoryID != nil {
		s.printf("  Category: %s\n", s.categoryName(*update.CategoryID))
	}
	if update.Memo != "" {
		s.printf("  Memo: %s\n", strings.ReplaceAll(update.Memo, "\n", " / "))
	}
	for i, sub := range update.Subtransactions {
		s.printf("  Split %d: %s  %s\n", i+1,
			model.FromMilliunits(sub.Amount).StringFixed(2), s.categoryName(sub.CategoryID))
	}
}

func (s *session) categoryName(id string) string {
	if name, ok := s.idToName[id]; ok {
		return name
	}
	return "Unknown Category"
}

// tail returns the last n characters of s, for displaying ids without
// exposing them whole.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
