package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/civitas/civitas-reader/internal/catalog"
	"github.com/civitas/civitas-reader/internal/config"
	"github.com/civitas/civitas-reader/internal/connectivity"
	"github.com/civitas/civitas-reader/internal/logging"
	"github.com/civitas/civitas-reader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "org.civitas.reader"
	AppName = "Civitas Reader"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	env, envErr := config.LoadEnvironment()

	logger, err := logging.NewWithLevel(env.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Warn("config file ignored", zap.Error(envErr))
	}
	logger.Info("starting", zap.String("app", AppName), zap.String("version", version))

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewReaderTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettingsWithDefaults(myApp, env)
	apiURL := settings.GetAPIBaseURL()
	timeout := settings.GetRequestTimeout()

	httpClient := &http.Client{Timeout: timeout}
	client := catalog.NewClient(apiURL,
		catalog.WithHTTPClient(httpClient),
		catalog.WithLogger(logger),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := connectivity.NewMonitor(
		connectivity.NewHTTPProbe(apiURL, settings.GetProbeInterval(), connectivity.DefaultProbeTimeout, logger),
		logger,
	)
	monitor.Start(ctx)

	root := ui.NewRootUI(myWindow, myApp, ui.Services{
		Fetcher:    client,
		Monitor:    monitor,
		Settings:   settings,
		HTTPClient: httpClient,
		Logger:     logger,
	})
	myWindow.SetOnClosed(func() {
		root.Close()
		client.Wait()
	})
	root.Start()

	myWindow.ShowAndRun()
}
