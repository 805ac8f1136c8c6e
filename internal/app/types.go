package app

import (
	"time"

	"reqctl/internal/types"
)

type ValidateRequest struct {
	ManifestPath   string
	RequiredGroups []string
	Externals      []string
	FlagUnpinned   bool
	Strict         bool
	ReportDir      string
}

type ValidateResult struct {
	ManifestPath string
	Findings     []types.LintFinding
	HasErrors    bool
}

type FormatRequest struct {
	ManifestPath string
	OutputPath   string
	Check        bool
}

type FormatResult struct {
	ManifestPath string
	Changed      bool
}

type LockRequest struct {
	ManifestPath  string
	IndexPath     string
	OverridesPath string
	OutputDir     string
	Externals     []string
}

type LockResult struct {
	ManifestPath string
	Fingerprint  string
	GeneratedAt  time.Time
	LockCount    int
	SkippedCount int
	OutputDir    string
}

type IndexBuildRequest struct {
	Output           string
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

type IndexBuildResult struct {
	OutputPath   string
	PackageCount int
}

type InspectRequest struct {
	ManifestPath string
	OutputDir    string
}

type InspectGroupSummary struct {
	Name     string
	Count    int
	Packages []string
}

type InspectResult struct {
	LockCount       int
	Fingerprint     string
	Groups          []InspectGroupSummary
	OverrideRecords []types.OverrideRecord
}
