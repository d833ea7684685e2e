package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderlens-dev/orderlens/internal/config"
)

func runInitCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{config.EnvToken, config.EnvBudgetID, config.EnvAccountID, config.EnvDomain} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cmd := newInitCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInit_WritesDefaultConfig(t *testing.T) {
	dir := t.TempDir()

	out, err := runInitCommand(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	cfg, err := config.Load(filepath.Join(dir, "orderlens.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "amazon.ca", cfg.Retail.Domain)
	assert.Empty(t, cfg.Ledger.BudgetID)
}

func TestInit_Flags(t *testing.T) {
	dir := t.TempDir()

	_, err := runInitCommand(t, dir, "--budget", "b1", "--account", "a1", "--domain", "amazon.com")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "orderlens.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "b1", cfg.Ledger.BudgetID)
	assert.Equal(t, "a1", cfg.Ledger.AccountID)
	assert.Equal(t, "amazon.com", cfg.Retail.Domain)
}

func TestInit_RefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orderlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger: {}\n"), 0o644))

	_, err := runInitCommand(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_NeverMentionsToken(t *testing.T) {
	dir := t.TempDir()

	out, err := runInitCommand(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, config.EnvToken)

	data, err := os.ReadFile(filepath.Join(dir, "orderlens.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "token")
}
