package types

// DefaultGroup is the group assigned to declarations that appear before
// any comment section header.
const DefaultGroup = "main"

// Declaration is a single dependency line of a requirements manifest.
// RawName preserves the spelling found in the file; Name holds the
// PEP 503 normalized form used for lookups and duplicate detection.
type Declaration struct {
	RawName string
	Name    string
	Op      ConstraintOp
	Version string
	Group   string
	Line    int
	Source  string
}

// Group is a comment-delimited section of a manifest. Groups carry no
// enforced isolation; they are organizational only.
type Group struct {
	Name         string
	Declarations []Declaration
}

// Manifest is a parsed requirements file with its groups in file order.
type Manifest struct {
	Path   string
	Groups []Group
}

// Declarations returns all declarations in file order.
func (m Manifest) Declarations() []Declaration {
	var out []Declaration
	for _, group := range m.Groups {
		out = append(out, group.Declarations...)
	}
	return out
}

// Group returns the named group and whether it exists.
func (m Manifest) Group(name string) (Group, bool) {
	for _, group := range m.Groups {
		if group.Name == name {
			return group, true
		}
	}
	return Group{}, false
}
