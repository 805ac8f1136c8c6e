package ports

import "reqctl/internal/types"

type ManifestPort interface {
	Load(path string) (types.Manifest, error)
	Write(path string, manifest types.Manifest) error
}
