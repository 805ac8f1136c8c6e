package cli

import "reqctl/internal/app"

func newAppService() app.Service {
	return app.NewService()
}
