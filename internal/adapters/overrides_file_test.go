package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOverridesYAML = `overrides:
  - package: matplotlib
    action: force
    value: "1.5.1"
    reason: upstream release pulled
    owner: platform
  - package: pandas
    action: relax
    reason: constraint too strict
    owner: platform
`

func TestOverridesFileAdapterLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleOverridesYAML), 0644))

	adapter := NewOverridesFileAdapter()
	directives, err := adapter.Load(path)
	require.NoError(t, err)
	require.Len(t, directives, 2)
	assert.Equal(t, "matplotlib", directives[0].Package)
	assert.Equal(t, "force", directives[0].Action)
	assert.Equal(t, "1.5.1", directives[0].Value)
	assert.Equal(t, "relax", directives[1].Action)
	assert.Empty(t, directives[1].Value)
}

func TestOverridesFileAdapterEmptyPath(t *testing.T) {
	adapter := NewOverridesFileAdapter()
	directives, err := adapter.Load("")
	require.NoError(t, err)
	assert.Nil(t, directives)
}

func TestOverridesFileAdapterMissingFile(t *testing.T) {
	adapter := NewOverridesFileAdapter()
	_, err := adapter.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overrides file not found")
}

func TestOverridesFileAdapterInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overrides: [bad"), 0644))

	adapter := NewOverridesFileAdapter()
	_, err := adapter.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse overrides yaml")
}
