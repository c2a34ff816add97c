package config

import (
	"os"
	"path/filepath"
	"testing"

	"tasnif/pkg/classifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRules_EmptyPathReturnsDefaults(t *testing.T) {
	tables, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, classifier.DefaultTables(), tables)
}

func TestLoadRules_OverlaysFile(t *testing.T) {
	doc := `
min_tokens: 4
escape_keywords: [react, laravel, django]
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	tables, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 4, tables.MinTokens)
	assert.Equal(t, []string{"react", "laravel", "django"}, tables.EscapeKeywords)

	// Untouched fields keep their defaults.
	defaults := classifier.DefaultTables()
	assert.Equal(t, defaults.HelpMaxTokens, tables.HelpMaxTokens)
	assert.Equal(t, defaults.AdTarget, tables.AdTarget)
}

func TestLoadRules_Errors(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_tokens: [not an int"), 0o600))
	_, err = LoadRules(path)
	require.Error(t, err)
}
