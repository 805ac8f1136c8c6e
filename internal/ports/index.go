package ports

import (
	"context"

	"reqctl/internal/types"
)

type IndexPort interface {
	AvailableVersions(name string) ([]string, error)
}

type IndexBuildRequest struct {
	IndexURL         string
	User             string
	APIKey           string
	Packages         []string
	MaxPackages      int
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type IndexBuilderPort interface {
	Build(ctx context.Context, request IndexBuildRequest) (types.PackageIndexFile, error)
}

type IndexWriterPort interface {
	Write(path string, index types.PackageIndexFile) error
}
