package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqctl/internal/adapters"
	"reqctl/internal/core"
	"reqctl/internal/types"
)

// DefaultRequiredGroups lists the section headers a complete manifest
// is expected to carry.
var DefaultRequiredGroups = []string{"Main", "Test", "Storage module"}

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	manifest, err := s.Manifests.Load(manifestPath)
	if err != nil {
		return ValidateResult{}, err
	}
	required := req.RequiredGroups
	if required == nil {
		required = DefaultRequiredGroups
	}
	linter := core.NewLinter(types.LintPolicy{
		Externals:      req.Externals,
		RequiredGroups: required,
		FlagUnpinned:   req.FlagUnpinned,
	})
	findings := linter.Lint(ctx, manifest)
	if dir := strings.TrimSpace(req.ReportDir); dir != "" {
		output := adapters.NewOutputFileAdapter(dir)
		if err := output.WriteLintReport(findings); err != nil {
			return ValidateResult{}, err
		}
	}
	hasErrors := core.HasErrors(findings)
	if req.Strict && len(findings) > 0 {
		hasErrors = true
	}
	return ValidateResult{
		ManifestPath: manifestPath,
		Findings:     findings,
		HasErrors:    hasErrors,
	}, nil
}
