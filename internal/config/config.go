package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names, kept compatible with earlier tooling.
const (
	EnvToken     = "YNAB_API_KEY"
	EnvBudgetID  = "YNAB_BUDGET_ID"
	EnvAccountID = "YNAB_ACCOUNT_ID"
	EnvDomain    = "AMAZON_DOMAIN"
)

// Config represents the top-level orderlens.yaml configuration.
type Config struct {
	Ledger LedgerConfig `yaml:"ledger"`
	Retail RetailConfig `yaml:"retail"`

	// Token authenticates against the ledger API. It is env-only and is
	// never written to the config file.
	Token string `yaml:"-"`
}

// LedgerConfig identifies the budget being reconciled.
type LedgerConfig struct {
	BudgetID  string `yaml:"budget_id"`
	AccountID string `yaml:"account_id,omitempty"` // empty = all accounts
}

// RetailConfig controls order extraction and memo generation.
type RetailConfig struct {
	Domain        string   `yaml:"domain"`
	PayeeKeywords []string `yaml:"payee_keywords"`
	MaxItems      int      `yaml:"max_items_per_order"`
	MemoMaxLength int      `yaml:"memo_max_length"`
}

// Load reads an orderlens.yaml file from disk and applies environment
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.ApplyEnv()
	return &cfg, nil
}

// Save writes a Config to a YAML file. The API token is never persisted.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default() *Config {
	return &Config{
		Retail: RetailConfig{
			Domain:        "amazon.ca",
			PayeeKeywords: []string{"amazon", "amzn", "amz"},
			MaxItems:      10,
			MemoMaxLength: 200,
		},
	}
}

// FromEnv builds a Config entirely from environment variables, for setups
// without a config file.
func FromEnv() *Config {
	cfg := Default()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overlays environment variables onto the config. An account id
// of "none" (any case) clears the account scope.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvBudgetID); v != "" {
		c.Ledger.BudgetID = v
	}
	if v, ok := os.LookupEnv(EnvAccountID); ok {
		v = strings.TrimSpace(v)
		if strings.EqualFold(v, "none") {
			v = ""
		}
		c.Ledger.AccountID = v
	}
	if v := os.Getenv(EnvDomain); v != "" {
		c.Retail.Domain = v
	}
}

// Validate reports missing required settings.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("%s environment variable is required", EnvToken)
	}
	if c.Ledger.BudgetID == "" {
		return fmt.Errorf("budget id is required (set %s or ledger.budget_id)", EnvBudgetID)
	}
	return nil
}
