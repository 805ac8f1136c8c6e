package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqctl/internal/types"
)

const (
	ActionForce   = "force"
	ActionRelax   = "relax"
	ActionReplace = "replace"
	ActionBlock   = "block"
)

// ApplyOverride rewrites a declaration according to an override
// directive and returns the record to include in the lock report.
func ApplyOverride(decl types.Declaration, directive types.OverrideDirective) (types.Declaration, types.OverrideRecord, error) {
	record := types.OverrideRecord{
		Package: directive.Package,
		Action:  directive.Action,
		Value:   directive.Value,
		Reason:  directive.Reason,
		Owner:   directive.Owner,
	}

	switch strings.ToLower(directive.Action) {
	case ActionForce:
		if directive.Value == "" {
			return types.Declaration{}, record, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("force directive requires value")
		}
		decl.Op = types.ConstraintOpEq2
		decl.Version = directive.Value
		decl.Source = "override:force"
		return decl, record, nil
	case ActionRelax:
		decl.Op = types.ConstraintOpNone
		decl.Version = ""
		decl.Source = "override:relax"
		return decl, record, nil
	case ActionReplace:
		if directive.Value == "" {
			return types.Declaration{}, record, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("replace directive requires value")
		}
		decl.RawName = directive.Value
		decl.Name = directive.Value
		decl.Op = types.ConstraintOpNone
		decl.Version = ""
		decl.Source = "override:replace"
		return decl, record, nil
	case ActionBlock:
		return types.Declaration{}, record, errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg(fmt.Sprintf("package blocked by directive: %s", decl.Name))
	default:
		return types.Declaration{}, record, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown override action: %s", directive.Action))
	}
}

// ValidateOverride checks a directive's required fields before use.
func ValidateOverride(directive types.OverrideDirective) error {
	if strings.TrimSpace(directive.Package) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("override directive package must not be empty")
	}
	action := strings.ToLower(strings.TrimSpace(directive.Action))
	switch action {
	case ActionForce, ActionRelax, ActionReplace, ActionBlock:
	case "":
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("override directive action must not be empty")
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("override directive has invalid action: %s", directive.Action))
	}
	if strings.TrimSpace(directive.Reason) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("override directive reason must not be empty")
	}
	if strings.TrimSpace(directive.Owner) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("override directive owner must not be empty")
	}
	if (action == ActionForce || action == ActionReplace) && strings.TrimSpace(directive.Value) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("override directive value must not be empty for force/replace actions")
	}
	return nil
}
