package cmd

import (
	"github.com/templui/okrledger/internal/app"
	"github.com/templui/okrledger/internal/config"
	"github.com/templui/okrledger/internal/logger"
)

// openApp loads config, sets up logging and opens a migrated app.
// Callers close the app and flush the logger.
func openApp() (*app.App, error) {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)
	return app.New(cfg)
}

func closeApp(a *app.App) {
	_ = a.Close()
	logger.Flush()
}
