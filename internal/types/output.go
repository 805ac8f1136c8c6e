package types

type LockEntry struct {
	Package string
	Version string
}

type LintFinding struct {
	Rule     string
	Severity Severity
	Line     int
	Package  string
	Message  string
}

type OverrideDirective struct {
	Package string `yaml:"package"`
	Action  string `yaml:"action"`
	Value   string `yaml:"value,omitempty"`
	Reason  string `yaml:"reason"`
	Owner   string `yaml:"owner"`
}

type OverrideRecord struct {
	Package string
	Action  string
	Value   string
	Reason  string
	Owner   string
}

type OverrideReport struct {
	Records []OverrideRecord
}

// SkippedExternal records a declaration that the lock step left for an
// external installation channel.
type SkippedExternal struct {
	Package string
	Group   string
}
