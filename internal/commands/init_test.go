package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/spendtrend/internal/commands"
	"github.com/cleared-dev/spendtrend/internal/config"
	"github.com/cleared-dev/spendtrend/internal/rules"
)

func runSpendtrend(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runSpendtrend(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized spendtrend project")

	expectedDirs := []string{
		"rules",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runSpendtrend(t, "init", dir)
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestInit_Rules(t *testing.T) {
	dir := t.TempDir()
	_, err := runSpendtrend(t, "init", dir)
	require.NoError(t, err)

	rs, err := rules.Load(filepath.Join(dir, "rules", "categorization-rules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, rules.Default().Rules(), rs.Rules())
}

func TestInit_Gitignore(t *testing.T) {
	dir := t.TempDir()
	_, err := runSpendtrend(t, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	contents := string(data)

	for _, pattern := range []string{"data.db", ".env", "import/"} {
		assert.Contains(t, contents, pattern, ".gitignore should contain %s", pattern)
	}
}

func TestInit_RefusesExistingProject(t *testing.T) {
	dir := t.TempDir()
	_, err := runSpendtrend(t, "init", dir)
	require.NoError(t, err)

	_, err = runSpendtrend(t, "init", dir)
	require.Error(t, err, "second init should fail")
	assert.Contains(t, err.Error(), "already exists")
}
