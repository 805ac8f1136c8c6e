package app

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqctl/internal/adapters"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	entries, fingerprint, err := s.OutputReader.ReadLock(filepath.Join(outputDir, adapters.LockFileName))
	if err != nil {
		return InspectResult{}, err
	}
	report, err := s.OutputReader.ReadOverrideReport(filepath.Join(outputDir, adapters.OverrideReportFileName))
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{
		LockCount:       len(entries),
		Fingerprint:     fingerprint,
		OverrideRecords: report.Records,
	}

	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath != "" {
		manifest, err := s.Manifests.Load(manifestPath)
		if err != nil {
			return InspectResult{}, err
		}
		locked := map[string]struct{}{}
		for _, entry := range entries {
			locked[entry.Package] = struct{}{}
		}
		for _, group := range manifest.Groups {
			summary := InspectGroupSummary{Name: group.Name}
			for _, decl := range group.Declarations {
				if _, ok := locked[decl.Name]; !ok {
					continue
				}
				summary.Count++
				summary.Packages = append(summary.Packages, decl.Name)
			}
			sort.Strings(summary.Packages)
			result.Groups = append(result.Groups, summary)
		}
	}
	return result, nil
}
