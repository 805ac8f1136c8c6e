package policies

import (
	"strings"

	"reqctl/internal/shared"
)

// DefaultExternals are packages typically installed through a separate
// channel (conda or a system package manager) rather than pinned in the
// manifest.
var DefaultExternals = []string{"numpy", "scipy", "tensorflow"}

// ExternalsPolicy decides whether a package is expected from an
// external installation channel rather than the index. Patterns may be
// exact names, `name*` prefixes, or the `*` wildcard, matched against
// PEP 503 normalized names.
type ExternalsPolicy struct {
	exact    map[string]struct{}
	prefixes []string
	wildcard bool
}

func NewExternalsPolicy(patterns []string) ExternalsPolicy {
	policy := ExternalsPolicy{exact: map[string]struct{}{}}
	for _, pattern := range patterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			policy.wildcard = true
			continue
		}
		normalized := shared.NormalizePackageName(trimmed)
		if strings.HasSuffix(normalized, "*") {
			policy.prefixes = append(policy.prefixes, strings.TrimSuffix(normalized, "*"))
			continue
		}
		policy.exact[normalized] = struct{}{}
	}
	return policy
}

func (p ExternalsPolicy) IsExternal(name string) bool {
	if p.wildcard {
		return true
	}
	normalized := shared.NormalizePackageName(name)
	if _, ok := p.exact[normalized]; ok {
		return true
	}
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}
	return false
}
