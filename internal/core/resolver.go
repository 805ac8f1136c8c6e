package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqctl/internal/policies"
	"reqctl/internal/ports"
	"reqctl/internal/shared"
	"reqctl/internal/types"
)

type LockResolver struct {
	Index     ports.IndexPort
	Externals policies.ExternalsPolicy
}

type LockResult struct {
	Entries   []types.LockEntry
	Skipped   []types.SkippedExternal
	Overrides types.OverrideReport
}

func NewLockResolver(index ports.IndexPort, externals policies.ExternalsPolicy) LockResolver {
	return LockResolver{
		Index:     index,
		Externals: externals,
	}
}

// Resolve pins every declaration to the highest index version that
// satisfies its constraint. Packages matched by the externals policy
// are skipped and recorded; conflicts fail unless an override directive
// names the package.
func (r LockResolver) Resolve(ctx context.Context, manifest types.Manifest, directives []types.OverrideDirective) (LockResult, error) {
	if r.Index == nil {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires an index port")
	}
	for _, directive := range directives {
		if err := policies.ValidateOverride(directive); err != nil {
			return LockResult{}, err
		}
	}

	directiveMap := mapDirectives(directives)
	result := LockResult{
		Overrides: types.OverrideReport{Records: []types.OverrideRecord{}},
	}
	locked := map[string]struct{}{}

	for _, decl := range dedupeDeclarations(manifest.Declarations()) {
		if r.Externals.IsExternal(decl.Name) {
			result.Skipped = append(result.Skipped, types.SkippedExternal{
				Package: decl.Name,
				Group:   decl.Group,
			})
			continue
		}
		version, record, err := r.resolveDeclaration(ctx, decl, directiveMap)
		if err != nil {
			return LockResult{}, err
		}
		if record.Action != "" {
			result.Overrides.Records = append(result.Overrides.Records, record)
		}
		name := decl.Name
		if record.Action == policies.ActionReplace {
			name = record.Value
		}
		if _, ok := locked[name]; ok {
			continue
		}
		locked[name] = struct{}{}
		result.Entries = append(result.Entries, types.LockEntry{
			Package: name,
			Version: version,
		})
	}

	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].Package < result.Entries[j].Package
	})
	log.Ctx(ctx).Debug().Int("locked", len(result.Entries)).Int("skipped", len(result.Skipped)).Msg("lock resolved")
	return result, nil
}

func (r LockResolver) resolveDeclaration(ctx context.Context, decl types.Declaration, directiveMap map[string]types.OverrideDirective) (string, types.OverrideRecord, error) {
	if directive, ok := directiveMap[decl.Name]; ok && strings.EqualFold(directive.Action, policies.ActionBlock) {
		_, record, err := policies.ApplyOverride(decl, directive)
		return "", record, err
	}

	available, err := r.Index.AvailableVersions(decl.Name)
	if err != nil {
		return "", types.OverrideRecord{}, err
	}
	version, err := bestCompatibleVersion(decl, available)
	if err == nil {
		return version, types.OverrideRecord{}, nil
	}

	directive, ok := directiveMap[decl.Name]
	if !ok {
		return "", types.OverrideRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("conflict without override directive: %s", decl.Name)).
			WithCause(err)
	}

	updated, record, err := policies.ApplyOverride(decl, directive)
	if err != nil {
		return "", types.OverrideRecord{}, err
	}

	available, err = r.Index.AvailableVersions(updated.Name)
	if err != nil {
		return "", types.OverrideRecord{}, err
	}
	version, err = bestCompatibleVersion(updated, available)
	if err != nil {
		return "", types.OverrideRecord{}, err
	}
	log.Ctx(ctx).Debug().Str("package", decl.Name).Str("action", record.Action).Msg("override directive applied")
	return version, record, nil
}

// dedupeDeclarations keeps the first declaration per normalized name.
// Conflicting duplicates are a lint error; by the time lock runs the
// first occurrence wins.
func dedupeDeclarations(decls []types.Declaration) []types.Declaration {
	seen := map[string]struct{}{}
	var out []types.Declaration
	for _, decl := range decls {
		if _, ok := seen[decl.Name]; ok {
			continue
		}
		seen[decl.Name] = struct{}{}
		out = append(out, decl)
	}
	return out
}

func mapDirectives(directives []types.OverrideDirective) map[string]types.OverrideDirective {
	mapped := map[string]types.OverrideDirective{}
	for _, directive := range directives {
		if directive.Package == "" {
			continue
		}
		mapped[shared.NormalizePackageName(directive.Package)] = directive
	}
	return mapped
}
