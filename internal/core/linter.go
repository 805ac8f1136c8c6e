package core

import (
	"context"
	"fmt"
	"sort"

	assert "github.com/ZanzyTHEbar/assert-lib"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/rs/zerolog/log"

	"reqctl/internal/policies"
	"reqctl/internal/types"
)

const (
	RuleDuplicate        = "duplicate"
	RuleEmptyGroup       = "empty-group"
	RuleInvalidVersion   = "invalid-version"
	RuleUnnormalizedName = "unnormalized-name"
	RuleExternalDeclared = "external-declared"
	RuleUnpinned         = "unpinned"
)

type Linter struct {
	Policy types.LintPolicy
}

func NewLinter(policy types.LintPolicy) Linter {
	if len(policy.Externals) == 0 {
		policy.Externals = policies.DefaultExternals
	}
	return Linter{Policy: policy}
}

// Lint checks a parsed manifest against the well-formedness rules.
// Syntax errors never reach this point; the parser rejects them with
// line numbers. Findings come back ordered by line, then rule.
func (l Linter) Lint(ctx context.Context, manifest types.Manifest) []types.LintFinding {
	assert.NotEmpty(ctx, manifest.Path, "manifest path must be set")

	var findings []types.LintFinding
	externals := policies.NewExternalsPolicy(l.Policy.Externals)

	findings = append(findings, lintDuplicates(manifest)...)
	findings = append(findings, lintRequiredGroups(manifest, l.Policy.RequiredGroups)...)

	for _, decl := range manifest.Declarations() {
		if decl.Op != types.ConstraintOpNone {
			if _, err := pep440.Parse(decl.Version); err != nil {
				findings = append(findings, types.LintFinding{
					Rule:     RuleInvalidVersion,
					Severity: types.SeverityError,
					Line:     decl.Line,
					Package:  decl.Name,
					Message:  fmt.Sprintf("%s is not a valid PEP 440 version", decl.Version),
				})
			}
		}
		if decl.RawName != decl.Name {
			findings = append(findings, types.LintFinding{
				Rule:     RuleUnnormalizedName,
				Severity: types.SeverityWarning,
				Line:     decl.Line,
				Package:  decl.Name,
				Message:  fmt.Sprintf("%s should be written as %s", decl.RawName, decl.Name),
			})
		}
		if externals.IsExternal(decl.Name) && decl.Op != types.ConstraintOpNone {
			findings = append(findings, types.LintFinding{
				Rule:     RuleExternalDeclared,
				Severity: types.SeverityWarning,
				Line:     decl.Line,
				Package:  decl.Name,
				Message:  fmt.Sprintf("%s is expected from a separate channel; drop the version constraint", decl.Name),
			})
		}
		if l.Policy.FlagUnpinned && decl.Op == types.ConstraintOpNone && !externals.IsExternal(decl.Name) {
			findings = append(findings, types.LintFinding{
				Rule:     RuleUnpinned,
				Severity: types.SeverityWarning,
				Line:     decl.Line,
				Package:  decl.Name,
				Message:  fmt.Sprintf("%s has no version constraint", decl.Name),
			})
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Rule < findings[j].Rule
	})
	log.Ctx(ctx).Debug().Str("manifest", manifest.Path).Int("findings", len(findings)).Msg("lint completed")
	return findings
}

// HasErrors reports whether any finding carries error severity.
func HasErrors(findings []types.LintFinding) bool {
	for _, finding := range findings {
		if finding.Severity == types.SeverityError {
			return true
		}
	}
	return false
}

func lintDuplicates(manifest types.Manifest) []types.LintFinding {
	seen := map[string]types.Declaration{}
	var findings []types.LintFinding
	for _, decl := range manifest.Declarations() {
		first, ok := seen[decl.Name]
		if !ok {
			seen[decl.Name] = decl
			continue
		}
		if first.Op == decl.Op && first.Version == decl.Version {
			findings = append(findings, types.LintFinding{
				Rule:     RuleDuplicate,
				Severity: types.SeverityWarning,
				Line:     decl.Line,
				Package:  decl.Name,
				Message:  fmt.Sprintf("%s already declared on line %d", decl.Name, first.Line),
			})
			continue
		}
		findings = append(findings, types.LintFinding{
			Rule:     RuleDuplicate,
			Severity: types.SeverityError,
			Line:     decl.Line,
			Package:  decl.Name,
			Message: fmt.Sprintf("%s declared on line %d with conflicting constraint %s%s",
				decl.Name, first.Line, first.Op, first.Version),
		})
	}
	return findings
}

func lintRequiredGroups(manifest types.Manifest, required []string) []types.LintFinding {
	var findings []types.LintFinding
	for _, name := range required {
		group, ok := manifest.Group(name)
		if ok && len(group.Declarations) > 0 {
			continue
		}
		findings = append(findings, types.LintFinding{
			Rule:     RuleEmptyGroup,
			Severity: types.SeverityError,
			Message:  fmt.Sprintf("group %q has no declarations", name),
		})
	}
	return findings
}
