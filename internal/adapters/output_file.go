package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqctl/internal/ports"
	"reqctl/internal/types"
)

const (
	LockFileName           = "requirements.lock"
	OverrideReportFileName = "overrides.report"
	LintReportFileName     = "lint.report"
)

type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

// WriteLock emits sorted name==version lines preceded by fingerprint
// and generation-time headers so consumers can detect drift without
// re-resolving.
func (a OutputFileAdapter) WriteLock(entries []types.LockEntry, fingerprint string, generatedAt time.Time) error {
	path, err := a.ensurePath(LockFileName)
	if err != nil {
		return err
	}
	ordered := append([]types.LockEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Package < ordered[j].Package
	})
	lines := []string{fmt.Sprintf("# fingerprint: %s", fingerprint)}
	if !generatedAt.IsZero() {
		lines = append(lines, fmt.Sprintf("# generated: %s", generatedAt.UTC().Format(time.RFC3339)))
	}
	for _, entry := range ordered {
		lines = append(lines, fmt.Sprintf("%s==%s", entry.Package, entry.Version))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

func (a OutputFileAdapter) WriteOverrideReport(report types.OverrideReport) error {
	path, err := a.ensurePath(OverrideReportFileName)
	if err != nil {
		return err
	}
	ordered := append([]types.OverrideRecord(nil), report.Records...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Package != ordered[j].Package {
			return ordered[i].Package < ordered[j].Package
		}
		return ordered[i].Action < ordered[j].Action
	})
	var lines []string
	for _, record := range ordered {
		lines = append(lines, fmt.Sprintf(
			"%s,%s,%s,%s,%s",
			record.Package,
			record.Action,
			record.Value,
			record.Reason,
			record.Owner,
		))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func (a OutputFileAdapter) WriteLintReport(findings []types.LintFinding) error {
	path, err := a.ensurePath(LintReportFileName)
	if err != nil {
		return err
	}
	var lines []string
	for _, finding := range findings {
		lines = append(lines, fmt.Sprintf(
			"%s,%s,%d,%s,%s",
			finding.Rule,
			finding.Severity,
			finding.Line,
			finding.Package,
			finding.Message,
		))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func (a OutputFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.OutputPort = OutputFileAdapter{}
