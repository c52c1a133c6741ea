// Package app wires the catalog service, the renderer, the downloader and
// the hooks together.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turbospeed/speedfiles/pkg/catalog"
	"github.com/turbospeed/speedfiles/pkg/config"
	"github.com/turbospeed/speedfiles/pkg/download"
	"github.com/turbospeed/speedfiles/pkg/render"
)

var (
	// ErrInvalidConfig is returned when the configuration is not usable.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnknownToken is returned when a requested size is not listed in the
	// catalog.
	ErrUnknownToken = errors.New("size not listed in the catalog")
)

// DownloadConcurrency caps parallel placeholder transfers.
const DownloadConcurrency = 3

// downloadedFilePrefix matches the naming scheme of the published files.
const downloadedFilePrefix = "turbospeed-"

// Logger interface defines the logging methods used by the application.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// App orchestrates one catalog build per trigger: fetch, parse, sort, render.
type App struct {
	cfg            *config.Config
	catalogService *catalog.Service
	downloader     *download.Downloader
	renderer       render.Renderer
	log            Logger
}

// NewApp returns a new App for the given configuration.
func NewApp(cfg *config.Config) (*App, error) {
	if !cfg.IsConfigValid() {
		return nil, ErrInvalidConfig
	}
	app := &App{
		cfg:            cfg,
		catalogService: catalog.NewService(cfg.CatalogURL),
		downloader:     download.NewDownloader(cfg.OutputDir),
		renderer:       render.NewConsole(os.Stdout, cfg.NoColor),
		log:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	catalog.SetLogger(app.log)
	return app, nil
}

// SetLogger sets the logger.
func (a *App) SetLogger(l Logger) {
	if l == nil {
		return
	}
	a.log = l
	catalog.SetLogger(l)
}

// SetRenderer sets the renderer.
func (a *App) SetRenderer(r render.Renderer) {
	if r != nil {
		a.renderer = r
	}
}

// SetHTTPClient sets the http client used for catalog fetches and downloads
// default: http.Client{}
func (a *App) SetHTTPClient(httpClient *http.Client) {
	a.catalogService.SetHTTPClient(httpClient)
	a.downloader.SetHTTPClient(httpClient)
}

// Run performs one catalog build and renders the outcome: populated, empty
// or errored. The catalog is a fresh value every time; nothing is reused
// between runs.
func (a *App) Run(ctx context.Context) error {
	a.renderer.Loading()
	cat, err := a.catalogService.Load(ctx)
	if err != nil {
		a.log.Error("catalog load failed", "error", err)
		a.renderer.Failed(err)
		return err
	}
	if cat.Len() == 0 {
		a.renderer.Empty()
		return nil
	}
	a.renderer.Populated(cat.Rows(a.cfg.ShortLinkBase()))
	return nil
}

// Watch re-runs the catalog build on a fixed interval until the context is
// cancelled. Every pass is an independent build; a failed pass is rendered
// and logged but does not stop the loop.
func (a *App) Watch(ctx context.Context) error {
	interval := time.Duration(a.cfg.WatchIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := a.Run(ctx); err != nil && ctx.Err() != nil {
		return fmt.Errorf("watch stopped: %w", ctx.Err())
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := a.Run(ctx); err != nil && ctx.Err() != nil {
				return fmt.Errorf("watch stopped: %w", ctx.Err())
			}
		}
	}
}

// Copy resolves a size token to its short URL, runs the configured copy hook
// for it when there is one, and returns the URL.
func (a *App) Copy(ctx context.Context, token string) (string, error) {
	cat, err := a.catalogService.Load(ctx)
	if err != nil {
		return "", err
	}
	url, ok := cat.URLFor(a.cfg.ShortLinkBase(), token)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownToken, token)
	}
	if a.cfg.Hooks.HasCopy() {
		if err := a.cfg.Hooks.ExecuteCopy(url); err != nil {
			return "", err
		}
	}
	return url, nil
}

// Download resolves the given size tokens against a freshly loaded catalog
// and transfers the matching placeholder files to the output directory.
// A single file gets a progress bar; several are transferred concurrently
// without one.
func (a *App) Download(ctx context.Context, tokens []string) error {
	if stat, err := os.Stat(a.cfg.OutputDir); err != nil || !stat.IsDir() {
		return fmt.Errorf("%s is not a directory", a.cfg.OutputDir)
	}
	cat, err := a.catalogService.Load(ctx)
	if err != nil {
		return err
	}

	urls := make(map[string]string, len(tokens))
	for _, token := range tokens {
		url, ok := cat.URLFor(a.cfg.ShortLinkBase(), token)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownToken, token)
		}
		urls[token] = url
	}

	a.downloader.SetProgress(len(tokens) == 1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DownloadConcurrency)
	for token, url := range urls {
		g.Go(func() error {
			filename := downloadedFilePrefix + token + ".bin"
			savedPath := filepath.Join(a.cfg.OutputDir, filename)
			a.log.Info("downloading", "url", url, "file", savedPath)
			if err := a.downloader.Fetch(gctx, url, filename); err != nil {
				return err
			}
			if a.cfg.Hooks.HasPostDownload() {
				return a.cfg.Hooks.ExecutePostDownload(savedPath)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	return nil
}
