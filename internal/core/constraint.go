package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqctl/internal/shared"
	"reqctl/internal/types"
)

// opTokens is the ordered list of comparator tokens tried during
// parsing. Longer tokens must precede shorter ones to avoid false
// matches (e.g. ">=" before ">").
var opTokens = []types.ConstraintOp{
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpCompat,
	types.ConstraintOpNe,
	types.ConstraintOpEq2,
	types.ConstraintOpEq,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
}

// ParseDeclaration splits a raw "name>=version" line into a Declaration.
// When no comparator is found the line is treated as a bare name
// reference with ConstraintOpNone. The group and line number are filled
// in by the manifest parser.
func ParseDeclaration(raw string, source string) (types.Declaration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Declaration{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty declaration")
	}
	for _, op := range opTokens {
		if strings.Contains(raw, string(op)) {
			parts := strings.SplitN(raw, string(op), 2)
			name := strings.TrimSpace(parts[0])
			version := strings.TrimSpace(parts[1])
			if name == "" || version == "" {
				return types.Declaration{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid declaration: %s", raw))
			}
			return types.Declaration{
				RawName: name,
				Name:    shared.NormalizePackageName(name),
				Op:      op,
				Version: version,
				Source:  source,
			}, nil
		}
	}
	return types.Declaration{
		RawName: raw,
		Name:    shared.NormalizePackageName(raw),
		Op:      types.ConstraintOpNone,
		Version: "",
		Source:  source,
	}, nil
}
