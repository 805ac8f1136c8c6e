package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqctl/internal/ports"
)

func (s Service) BuildIndex(ctx context.Context, req IndexBuildRequest) (IndexBuildResult, error) {
	output := strings.TrimSpace(req.Output)
	if output == "" {
		return IndexBuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}
	index, err := s.IndexBuilder.Build(ctx, ports.IndexBuildRequest{
		IndexURL:         req.IndexURL,
		User:             req.User,
		APIKey:           req.APIKey,
		Packages:         req.Packages,
		MaxPackages:      req.MaxPackages,
		Workers:          req.Workers,
		HTTPTimeoutSec:   req.HTTPTimeoutSec,
		HTTPRetries:      req.HTTPRetries,
		HTTPRetryDelayMs: req.HTTPRetryDelayMs,
	})
	if err != nil {
		return IndexBuildResult{}, err
	}
	if err := s.IndexWriter.Write(output, index); err != nil {
		return IndexBuildResult{}, err
	}
	return IndexBuildResult{
		OutputPath:   output,
		PackageCount: len(index.Packages),
	}, nil
}
