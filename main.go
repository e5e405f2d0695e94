package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"mosaic/adapters/excel"
	"mosaic/domain/chart"
	"mosaic/internal"
	"mosaic/internal/config"
	"mosaic/internal/dashboard"
	"mosaic/internal/errors"
	"mosaic/internal/profiling"
	"mosaic/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appConfig, logger); err != nil {
		log.Fatalf("Dashboard stopped: %v", err)
	}
}

// run builds the app context and serves until ctx ends. The dataset is loaded
// once here and never reloaded.
func run(ctx context.Context, appConfig *config.Config, logger *internal.Logger) error {
	table, err := excel.Load(excel.ReaderConfig{
		FilePath:  appConfig.Data.File,
		SheetName: appConfig.Data.Sheet,
	})
	if err != nil {
		return err
	}

	opts := dashboard.DefaultOptions()
	opts.Source = filepath.Base(appConfig.Data.File)
	opts.IdentityKeyColumn = appConfig.Identity.KeyColumn
	opts.IdentityNameColumn = appConfig.Identity.NameColumn
	opts.Chart = chart.Options{
		Title:        appConfig.Dashboard.ChartTitle,
		YAxisLabel:   chart.DefaultYAxisLabel,
		BottomMargin: chart.DefaultBottomMargin,
	}
	app := dashboard.NewApp(table, opts, logger)

	var notes []byte
	if appConfig.Dashboard.NotesFile != "" {
		notes, err = os.ReadFile(appConfig.Dashboard.NotesFile)
		if err != nil {
			return errors.Wrapf(err, "failed to read notes file %s", appConfig.Dashboard.NotesFile)
		}
	}

	server, err := ui.NewServer(app, ui.Config{Title: appConfig.Dashboard.Title, Notes: notes}, logger)
	if err != nil {
		return errors.Wrap(err, "failed to initialize server")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, ":"+appConfig.Server.Port)
	})

	if appConfig.Profiling.Enabled {
		pprofServer := profiling.NewServer(appConfig.Profiling.Port)
		g.Go(func() error {
			logger.Info("profiling server starting on :%s", appConfig.Profiling.Port)
			logger.Info("view profiles: go tool pprof -http=:8081 http://localhost:%s/debug/pprof/profile?seconds=30", appConfig.Profiling.Port)
			errCh := make(chan error, 1)
			go func() { errCh <- pprofServer.ListenAndServe() }()
			select {
			case err := <-errCh:
				return err
			case <-gctx.Done():
				return pprofServer.Close()
			}
		})
	}

	return g.Wait()
}
