package adapters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"reqctl/internal/types"
)

func TestOutputFileAdapterWriteLock(t *testing.T) {
	dir := t.TempDir()
	adapter := NewOutputFileAdapter(dir)

	err := adapter.WriteLock([]types.LockEntry{
		{Package: "nose", Version: "1.3.7"},
		{Package: "matplotlib", Version: "1.5.1"},
	}, "abc123def456", time.Date(2017, 10, 2, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, LockFileName))
	require.NoError(t, err)
	expected := "# fingerprint: abc123def456\n# generated: 2017-10-02T12:00:00Z\nmatplotlib==1.5.1\nnose==1.3.7\n"
	if diff := cmp.Diff(expected, string(data)); diff != "" {
		t.Fatalf("unexpected requirements.lock content (-want +got):\n%s", diff)
	}
}

func TestOutputFileAdapterWriteLockZeroTimeOmitsHeader(t *testing.T) {
	dir := t.TempDir()
	adapter := NewOutputFileAdapter(dir)

	err := adapter.WriteLock([]types.LockEntry{
		{Package: "nose", Version: "1.3.7"},
	}, "abc123def456", time.Time{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, LockFileName))
	require.NoError(t, err)
	require.Equal(t, "# fingerprint: abc123def456\nnose==1.3.7\n", string(data))
}

func TestOutputFileAdapterWriteOverrideReport(t *testing.T) {
	dir := t.TempDir()
	adapter := NewOutputFileAdapter(dir)

	err := adapter.WriteOverrideReport(types.OverrideReport{
		Records: []types.OverrideRecord{
			{Package: "pandas", Action: "replace", Value: "tables", Reason: "swap", Owner: "team"},
			{Package: "matplotlib", Action: "force", Value: "1.5.1", Reason: "pin", Owner: "team"},
		},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, OverrideReportFileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "matplotlib,force,1.5.1,pin,team", lines[0])
	require.Equal(t, "pandas,replace,tables,swap,team", lines[1])
}

func TestOutputFileAdapterWriteLintReport(t *testing.T) {
	dir := t.TempDir()
	adapter := NewOutputFileAdapter(dir)

	err := adapter.WriteLintReport([]types.LintFinding{
		{Rule: "duplicate", Severity: types.SeverityWarning, Line: 4, Package: "nose", Message: "nose already declared on line 2"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, LintReportFileName))
	require.NoError(t, err)
	require.Equal(t, "duplicate,warning,4,nose,nose already declared on line 2", strings.TrimSpace(string(data)))
}

func TestOutputFileAdapterEmptyDir(t *testing.T) {
	adapter := NewOutputFileAdapter("")
	err := adapter.WriteLock(nil, "abc", time.Time{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "output directory is empty")
}
