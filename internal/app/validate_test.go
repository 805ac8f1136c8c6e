package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqctl/internal/adapters"
	"reqctl/internal/core"
)

func fixturePath(t *testing.T, name string) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return filepath.Join(root, "fixtures", name)
}

func TestValidateApp(t *testing.T) {
	service := NewService()
	result, err := service.Validate(t.Context(), ValidateRequest{
		ManifestPath: fixturePath(t, "requirements.txt"),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
	assert.False(t, result.HasErrors)
}

func TestValidateAppRequiresManifestPath(t *testing.T) {
	service := NewService()
	_, err := service.Validate(t.Context(), ValidateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest path is required")
}

func TestValidateAppMissingRequiredGroup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Main\nmatplotlib==1.5.1\n"), 0644))

	service := NewService()
	result, err := service.Validate(t.Context(), ValidateRequest{ManifestPath: path})
	require.NoError(t, err)
	assert.True(t, result.HasErrors)

	var rules []string
	for _, finding := range result.Findings {
		rules = append(rules, finding.Rule)
	}
	assert.Contains(t, rules, core.RuleEmptyGroup)
}

func TestValidateAppStrictUpgradesWarnings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Main\nnumpy>=1.11\n"), 0644))

	service := NewService()

	result, err := service.Validate(t.Context(), ValidateRequest{
		ManifestPath:   path,
		RequiredGroups: []string{},
	})
	require.NoError(t, err)
	assert.False(t, result.HasErrors)

	result, err = service.Validate(t.Context(), ValidateRequest{
		ManifestPath:   path,
		RequiredGroups: []string{},
		Strict:         true,
	})
	require.NoError(t, err)
	assert.True(t, result.HasErrors)
}

func TestValidateAppWritesReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Main\nh5py\nh5py\n"), 0644))

	reportDir := filepath.Join(dir, "out")
	service := NewService()
	result, err := service.Validate(t.Context(), ValidateRequest{
		ManifestPath:   path,
		RequiredGroups: []string{},
		ReportDir:      reportDir,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Findings)

	data, err := os.ReadFile(filepath.Join(reportDir, adapters.LintReportFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), core.RuleDuplicate)
}
