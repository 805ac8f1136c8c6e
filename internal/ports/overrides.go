package ports

import "reqctl/internal/types"

type OverridesPort interface {
	Load(path string) ([]types.OverrideDirective, error)
}
