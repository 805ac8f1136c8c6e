package ports

import (
	"time"

	"reqctl/internal/types"
)

type OutputPort interface {
	WriteLock(entries []types.LockEntry, fingerprint string, generatedAt time.Time) error
	WriteOverrideReport(report types.OverrideReport) error
	WriteLintReport(findings []types.LintFinding) error
}

type OutputReaderPort interface {
	ReadLock(path string) ([]types.LockEntry, string, error)
	ReadOverrideReport(path string) (types.OverrideReport, error)
}
