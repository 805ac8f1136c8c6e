package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"reqctl/internal/types"
)

// versionCache memoizes parsed PEP 440 versions and specifier sets to
// avoid repeated parsing during candidate evaluation and sorting.
type versionCache struct {
	versions   map[string]pep440.Version
	specifiers map[string]pep440.Specifiers
}

func newVersionCache() *versionCache {
	return &versionCache{
		versions:   map[string]pep440.Version{},
		specifiers: map[string]pep440.Specifiers{},
	}
}

func (c *versionCache) version(value string) (pep440.Version, error) {
	if parsed, ok := c.versions[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, err
	}
	c.versions[value] = parsed
	return parsed, nil
}

func (c *versionCache) spec(value string) (pep440.Specifiers, error) {
	if parsed, ok := c.specifiers[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.NewSpecifiers(value)
	if err != nil {
		return pep440.Specifiers{}, err
	}
	c.specifiers[value] = parsed
	return parsed, nil
}

// compare returns -1, 0, or 1 comparing two version strings by PEP 440
// ordering. Returns 0 on parse errors.
func (c *versionCache) compare(a string, b string) int {
	v1, err := c.version(a)
	if err != nil {
		return 0
	}
	v2, err := c.version(b)
	if err != nil {
		return 0
	}
	return v1.Compare(v2)
}

// bestCompatibleVersion selects the highest version from available that
// satisfies the declaration's constraint. Returns a coded error when no
// versions are known or none are compatible.
func bestCompatibleVersion(decl types.Declaration, available []string) (string, error) {
	if len(available) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no available versions for %s", decl.Name))
	}
	cache := newVersionCache()
	specifiers, err := prepareSpecifiers(decl, cache)
	if err != nil {
		return "", err
	}
	var candidates []string
	for _, version := range available {
		ok, err := satisfies(version, specifiers, cache)
		if err != nil {
			return "", err
		}
		if ok {
			candidates = append(candidates, version)
		}
	}
	if len(candidates) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no compatible version for %s", decl.Name))
	}
	sort.Slice(candidates, func(i, j int) bool {
		return cache.compare(candidates[i], candidates[j]) > 0
	})
	return candidates[0], nil
}

// prepareSpecifiers parses the declaration's constraint upfront so it
// can be reused across candidate comparisons. An unconstrained
// declaration yields no specifiers and matches everything.
func prepareSpecifiers(decl types.Declaration, cache *versionCache) ([]pep440.Specifiers, error) {
	if decl.Op == types.ConstraintOpNone {
		return nil, nil
	}
	spec, err := cache.spec(toSpecifierString(decl))
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version constraint for %s", decl.Name)).
			WithCause(err)
	}
	return []pep440.Specifiers{spec}, nil
}

func satisfies(version string, specifiers []pep440.Specifiers, cache *versionCache) (bool, error) {
	if len(specifiers) == 0 {
		return true, nil
	}
	parsed, err := cache.version(version)
	if err != nil {
		return false, err
	}
	for _, spec := range specifiers {
		if !spec.Check(parsed) {
			return false, nil
		}
	}
	return true, nil
}

// toSpecifierString converts a declaration to a PEP 440 specifier
// string (e.g. ">= 1.0", "~= 2.3"). The legacy "=" comparator maps to
// "==".
func toSpecifierString(decl types.Declaration) string {
	op := string(decl.Op)
	if decl.Op == types.ConstraintOpEq {
		op = "=="
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", op, decl.Version))
}
