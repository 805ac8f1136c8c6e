package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqctl/internal/ports"
	"reqctl/internal/types"
)

type OutputReaderAdapter struct{}

func NewOutputReaderAdapter() OutputReaderAdapter {
	return OutputReaderAdapter{}
}

// ReadLock parses a requirements.lock file back into entries and the
// fingerprint from its header comment.
func (a OutputReaderAdapter) ReadLock(path string) ([]types.LockEntry, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("requirements.lock not found").
			WithCause(err)
	}
	var entries []types.LockEntry
	var fingerprint string
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			comment := strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
			if value, ok := strings.CutPrefix(comment, "fingerprint:"); ok {
				fingerprint = strings.TrimSpace(value)
			}
			continue
		}
		parts := strings.SplitN(trimmed, "==", 2)
		if len(parts) != 2 {
			return nil, "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid requirements.lock format")
		}
		entries = append(entries, types.LockEntry{
			Package: strings.TrimSpace(parts[0]),
			Version: strings.TrimSpace(parts[1]),
		})
	}
	return entries, fingerprint, nil
}

func (a OutputReaderAdapter) ReadOverrideReport(path string) (types.OverrideReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.OverrideReport{}, nil
		}
		return types.OverrideReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("overrides.report not found").
			WithCause(err)
	}
	var records []types.OverrideRecord
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 5 {
			return types.OverrideReport{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid overrides.report format")
		}
		records = append(records, types.OverrideRecord{
			Package: strings.TrimSpace(parts[0]),
			Action:  strings.TrimSpace(parts[1]),
			Value:   strings.TrimSpace(parts[2]),
			Reason:  strings.TrimSpace(parts[3]),
			Owner:   strings.TrimSpace(parts[4]),
		})
	}
	return types.OverrideReport{Records: records}, nil
}

var _ ports.OutputReaderPort = OutputReaderAdapter{}
