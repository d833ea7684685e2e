package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/orderlens-dev/orderlens/internal/config"
)

func newInitCommand() *cobra.Command {
	var budgetID string
	var accountID string
	var domain string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default orderlens.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, budgetID, accountID, domain)
		},
	}

	cmd.Flags().StringVar(&budgetID, "budget", "", "ledger budget id")
	cmd.Flags().StringVar(&accountID, "account", "", "ledger account id (empty = all accounts)")
	cmd.Flags().StringVar(&domain, "domain", "", "storefront domain for order links")

	return cmd
}

func runInit(cmd *cobra.Command, dir, budgetID, accountID, domain string) error {
	path := filepath.Join(dir, "orderlens.yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	cfg := config.Default()
	cfg.Ledger.BudgetID = budgetID
	cfg.Ledger.AccountID = accountID
	if domain != "" {
		cfg.Retail.Domain = domain
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s before running categorize; the token is never stored in the file.\n", config.EnvToken)
	return nil
}
