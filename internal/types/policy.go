package types

// LintPolicy configures which lint rules fire and how.
//
// Externals lists packages expected to be installed through a separate
// channel (e.g. a system package manager or conda); entries may be
// exact names, `name*` prefixes, or `*`. RequiredGroups must each hold
// at least one declaration. FlagUnpinned enables the optional warning
// for declarations without any version constraint.
type LintPolicy struct {
	Externals      []string `yaml:"externals"`
	RequiredGroups []string `yaml:"required_groups"`
	FlagUnpinned   bool     `yaml:"flag_unpinned"`
}
