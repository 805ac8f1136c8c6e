package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqctl/internal/adapters"
	"reqctl/internal/types"
)

func TestLockApp(t *testing.T) {
	outputDir := t.TempDir()
	fixed := time.Date(2017, 10, 2, 12, 0, 0, 0, time.UTC)
	service := NewService()
	service.Clock = func() time.Time { return fixed }
	result, err := service.Lock(t.Context(), LockRequest{
		ManifestPath: fixturePath(t, "requirements.txt"),
		IndexPath:    fixturePath(t, "package-index.yaml"),
		OutputDir:    outputDir,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, result.LockCount)
	assert.Equal(t, 0, result.SkippedCount)
	assert.Len(t, result.Fingerprint, 12)
	assert.Equal(t, fixed, result.GeneratedAt)

	data, err := os.ReadFile(filepath.Join(outputDir, adapters.LockFileName))
	require.NoError(t, err)
	expected := strings.Join([]string{
		"# fingerprint: " + result.Fingerprint,
		"# generated: 2017-10-02T12:00:00Z",
		"coverage==4.2",
		"dill==0.2.7.1",
		"h5py==2.7.1",
		"matplotlib==1.5.1",
		"nose==1.3.7",
		"scikit-learn==0.19.1",
		"",
	}, "\n")
	if diff := cmp.Diff(expected, string(data)); diff != "" {
		t.Fatalf("unexpected requirements.lock (-want +got):\n%s", diff)
	}
}

func TestLockAppSkipsExternals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Main\nnumpy\nh5py\n"), 0644))

	service := NewService()
	result, err := service.Lock(t.Context(), LockRequest{
		ManifestPath: path,
		IndexPath:    fixturePath(t, "package-index.yaml"),
		OutputDir:    filepath.Join(dir, "out"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.LockCount)
	assert.Equal(t, 1, result.SkippedCount)
}

func TestLockAppFingerprintIsStable(t *testing.T) {
	service := NewService()

	first, err := service.Lock(t.Context(), LockRequest{
		ManifestPath: fixturePath(t, "requirements.txt"),
		IndexPath:    fixturePath(t, "package-index.yaml"),
		OutputDir:    t.TempDir(),
	})
	require.NoError(t, err)

	second, err := service.Lock(t.Context(), LockRequest{
		ManifestPath: fixturePath(t, "requirements.txt"),
		IndexPath:    fixturePath(t, "package-index.yaml"),
		OutputDir:    t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
}

func TestLockAppWithOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Main\nmatplotlib>=3.0\n"), 0644))
	outputDir := filepath.Join(dir, "out")

	service := NewService()
	result, err := service.Lock(t.Context(), LockRequest{
		ManifestPath:  path,
		IndexPath:     fixturePath(t, "package-index.yaml"),
		OverridesPath: fixturePath(t, "overrides.yaml"),
		OutputDir:     outputDir,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.LockCount)

	entries, _, err := adapters.NewOutputReaderAdapter().ReadLock(filepath.Join(outputDir, adapters.LockFileName))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.LockEntry{Package: "matplotlib", Version: "1.5.1"}, entries[0])

	report, err := adapters.NewOutputReaderAdapter().ReadOverrideReport(filepath.Join(outputDir, adapters.OverrideReportFileName))
	require.NoError(t, err)
	require.Len(t, report.Records, 1)
	assert.Equal(t, "force", report.Records[0].Action)
}

func TestLockAppConflictWithoutOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Main\nmatplotlib>=3.0\n"), 0644))

	service := NewService()
	_, err := service.Lock(t.Context(), LockRequest{
		ManifestPath: path,
		IndexPath:    fixturePath(t, "package-index.yaml"),
		OutputDir:    filepath.Join(dir, "out"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflict without override directive: matplotlib")
}

func TestLockAppValidatesRequest(t *testing.T) {
	service := NewService()

	_, err := service.Lock(t.Context(), LockRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest path is required")

	_, err = service.Lock(t.Context(), LockRequest{ManifestPath: "requirements.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package index file is required")

	_, err = service.Lock(t.Context(), LockRequest{ManifestPath: "requirements.txt", IndexPath: "index.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory is required")
}

func TestTimeNowFallsBackToWallClock(t *testing.T) {
	assert.False(t, timeNow(nil).IsZero())
	fixed := time.Date(2017, 10, 2, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, timeNow(func() time.Time { return fixed }))
}

func TestLockFingerprintOrderIndependent(t *testing.T) {
	a := lockFingerprint([]types.LockEntry{
		{Package: "nose", Version: "1.3.7"},
		{Package: "matplotlib", Version: "1.5.1"},
	})
	b := lockFingerprint([]types.LockEntry{
		{Package: "matplotlib", Version: "1.5.1"},
		{Package: "nose", Version: "1.3.7"},
	})
	assert.Equal(t, a, b)

	c := lockFingerprint([]types.LockEntry{
		{Package: "matplotlib", Version: "1.5.0"},
		{Package: "nose", Version: "1.3.7"},
	})
	assert.NotEqual(t, a, c)
}
