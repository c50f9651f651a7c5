package app

import (
	"log/slog"
	"os"

	"github.com/Prototype-Group/sidekick/internal/mockservice"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.mockservice.enabled") {
		err := mockservice.New(mockservice.Dependency{
			Config:    a.config,
			Router:    a.router,
			WrapperID: a.uuid,
		})
		if err != nil {
			slog.Error("failed to init module mockservice", "error", err)
			os.Exit(1)
		}
	}
}
