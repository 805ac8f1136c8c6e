package app

import (
	"time"

	"reqctl/internal/adapters"
	"reqctl/internal/ports"
)

type Service struct {
	Manifests    ports.ManifestPort
	Overrides    ports.OverridesPort
	OutputReader ports.OutputReaderPort
	IndexBuilder ports.IndexBuilderPort
	IndexWriter  ports.IndexWriterPort
	Clock        func() time.Time
}

func NewService() Service {
	return Service{
		Manifests:    adapters.NewManifestFileAdapter(),
		Overrides:    adapters.NewOverridesFileAdapter(),
		OutputReader: adapters.NewOutputReaderAdapter(),
		IndexBuilder: adapters.NewIndexBuilderAdapter(),
		IndexWriter:  adapters.NewIndexWriterAdapter(),
		Clock:        time.Now,
	}
}
