package app

import (
	"context"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqctl/internal/core"
)

// Format rewrites a manifest in canonical form. With Check set, no file
// is written; Changed reports whether a rewrite would alter the file.
func (s Service) Format(ctx context.Context, req FormatRequest) (FormatResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return FormatResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	original, err := os.ReadFile(manifestPath)
	if err != nil {
		return FormatResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not found").
			WithCause(err)
	}
	manifest, err := s.Manifests.Load(manifestPath)
	if err != nil {
		return FormatResult{}, err
	}
	rendered := core.RenderManifest(manifest)
	changed := rendered != string(original)

	result := FormatResult{ManifestPath: manifestPath, Changed: changed}
	if req.Check || !changed {
		return result, nil
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		outputPath = manifestPath
	}
	if err := s.Manifests.Write(outputPath, manifest); err != nil {
		return FormatResult{}, err
	}
	log.Ctx(ctx).Debug().Str("manifest", manifestPath).Str("output", outputPath).Msg("manifest formatted")
	return result, nil
}
