package app

import (
	"context"
	"net/http"

	"github.com/Prototype-Group/sidekick/internal/pkg/pkgconfig"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkglog"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkgrouter"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkguid"
)

// App is the shell of the mock dataset service daemon: configuration,
// HTTP server and the mounted service module, with graceful shutdown.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid pkguid.StringID

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New() *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
