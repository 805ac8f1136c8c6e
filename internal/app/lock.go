package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqctl/internal/adapters"
	"reqctl/internal/core"
	"reqctl/internal/policies"
	"reqctl/internal/types"
)

func (s Service) Lock(ctx context.Context, req LockRequest) (LockResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	indexPath := strings.TrimSpace(req.IndexPath)
	if indexPath == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package index file is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}

	manifest, err := s.Manifests.Load(manifestPath)
	if err != nil {
		return LockResult{}, err
	}
	directives, err := s.Overrides.Load(strings.TrimSpace(req.OverridesPath))
	if err != nil {
		return LockResult{}, err
	}

	externals := req.Externals
	if externals == nil {
		externals = policies.DefaultExternals
	}
	resolver := core.NewLockResolver(
		adapters.NewIndexFileAdapter(indexPath),
		policies.NewExternalsPolicy(externals),
	)
	result, err := resolver.Resolve(ctx, manifest, directives)
	if err != nil {
		return LockResult{}, err
	}

	fingerprint := lockFingerprint(result.Entries)
	generatedAt := timeNow(s.Clock)
	output := adapters.NewOutputFileAdapter(outputDir)
	if err := output.WriteLock(result.Entries, fingerprint, generatedAt); err != nil {
		return LockResult{}, err
	}
	if len(result.Overrides.Records) > 0 {
		if err := output.WriteOverrideReport(result.Overrides); err != nil {
			return LockResult{}, err
		}
	}
	return LockResult{
		ManifestPath: manifestPath,
		Fingerprint:  fingerprint,
		GeneratedAt:  generatedAt,
		LockCount:    len(result.Entries),
		SkippedCount: len(result.Skipped),
		OutputDir:    outputDir,
	}, nil
}

func timeNow(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}

// lockFingerprint hashes the sorted lock entries so that any change in
// the pinned set changes the header, regardless of entry order.
func lockFingerprint(entries []types.LockEntry) string {
	ordered := append([]types.LockEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Package < ordered[j].Package
	})
	var builder strings.Builder
	for _, entry := range ordered {
		builder.WriteString(entry.Package)
		builder.WriteString("==")
		builder.WriteString(entry.Version)
		builder.WriteString("\n")
	}
	sum := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(sum[:])[:12]
}
