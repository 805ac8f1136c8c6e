package types

// PackageIndexFile is the on-disk inventory of known package versions,
// keyed by PEP 503 normalized name. Versions are sorted ascending by
// PEP 440 ordering when produced by the index builder.
type PackageIndexFile struct {
	Packages map[string][]string `yaml:"packages"`
}
