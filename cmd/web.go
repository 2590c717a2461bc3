package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rubiojr/parems/cmd/web/components"
	"github.com/rubiojr/parems/cmd/web/components/types"
	"github.com/rubiojr/parems/pkg/api"
	"github.com/rubiojr/parems/pkg/config"
	"github.com/rubiojr/parems/pkg/log"
	"github.com/rubiojr/parems/pkg/search"
	"github.com/rubiojr/parems/pkg/storage"
	"github.com/rubiojr/parems/pkg/version"
	"github.com/urfave/cli/v3"
)

// WebCommand creates the web command with both API and UI
func WebCommand() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start web server with both API endpoints and HTML interface",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides config)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (overrides config)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return startWebServer(ctx, c.String("config"), c.String("host"), c.String("port"))
		},
	}
}

const optimizeInterval = time.Hour

// WebServer holds the HTML handlers and their dependencies
type WebServer struct {
	store     *storage.Store
	apiServer *api.Server
	logger    *log.Logger
}

func newWebServer(cfg *config.Config, store *storage.Store) (*WebServer, http.Handler) {
	s := &WebServer{
		store: store,
		apiServer: api.NewServer(store, api.Options{
			DefaultResultsPerPage: cfg.Web.DefaultResultsPerPage,
			RateLimit:             cfg.Web.RateLimit,
		}),
		logger: log.ForService("web"),
	}

	mux := http.NewServeMux()
	s.apiServer.RegisterRoutes(mux)
	mux.Handle("GET /{$}", s.apiServer.RateLimited(http.HandlerFunc(s.handleHome)))

	return s, api.Handler(mux)
}

// startWebServer starts the web server and blocks until interrupted
func startWebServer(ctx context.Context, configPath, host, port string) error {
	cfg, store, err := openStore(configPath, false)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if host != "" {
		cfg.Web.Host = host
	}
	if port != "" {
		cfg.Web.Port = port
	}

	webServer, handler := newWebServer(cfg, store)
	logger := webServer.logger

	maintenanceCtx, stopMaintenance := context.WithCancel(ctx)
	defer stopMaintenance()
	go store.OptimizeEvery(maintenanceCtx, optimizeInterval)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: cfg.Web.ReadTimeout.Duration,
		ReadTimeout:       cfg.Web.ReadTimeout.Duration,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting web server on http://%s", cfg.Addr())
		logger.Infof("Available endpoints:")
		logger.Infof("  GET / - Search page")
		logger.Infof("  GET /api/search - Search (JSON)")
		logger.Infof("  GET /api/paremiotipus/{title} - Recorded variants of a paremiotipus")
		logger.Infof("  GET /api/fonts - List sources")
		logger.Infof("  GET /api/fonts/{id} - Source details")
		logger.Infof("  GET /api/stats - Catalog statistics")
		logger.Infof("  GET /health - Health check")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	var events <-chan fsnotify.Event
	var watchErrors <-chan error
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warnf("failed to create config file watcher: %v", err)
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warnf("failed to close config file watcher: %v", err)
			}
		}()
		if err := watcher.Add(configPath); err != nil {
			logger.Warnf("failed to watch config file %s: %v", configPath, err)
		} else {
			logger.Infof("Watching config file for changes: %s", configPath)
		}
		events, watchErrors = watcher.Events, watcher.Errors
	}

	for {
		select {
		case err := <-serverErr:
			return fmt.Errorf("web server: %w", err)
		case <-ctx.Done():
			return shutdown(server, logger)
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				webServer.reload(configPath)
				continue
			}
			return shutdown(server, logger)
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			logger.Infof("Config file changed: %s (event: %s)", event.Name, event.Op.String())

			// Editors replace the file on save; the watch has to be re-added.
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				time.Sleep(200 * time.Millisecond)
				if _, err := os.Stat(configPath); os.IsNotExist(err) {
					logger.Warnf("config file was removed, keeping current settings")
					continue
				}
				if err := watcher.Add(configPath); err != nil {
					logger.Warnf("failed to re-add config file to watcher: %v", err)
				}
			} else {
				time.Sleep(100 * time.Millisecond)
			}
			webServer.reload(configPath)
		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			logger.Warnf("config file watcher error: %v", err)
		}
	}
}

func shutdown(server *http.Server, logger *log.Logger) error {
	logger.Infof("Shutting down web server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// reload applies the settings that can change without a restart: the
// default page size and the count cache TTL.
func (s *WebServer) reload(configPath string) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		s.logger.Errorf("failed to reload configuration: %v", err)
		return
	}
	s.applyConfig(cfg)
	s.logger.Infof("Configuration reloaded (results per page %d, cache ttl %s)",
		s.apiServer.DefaultResultsPerPage(), cfg.Cache.CountTTL())
}

func (s *WebServer) applyConfig(cfg *config.Config) {
	s.apiServer.SetDefaultResultsPerPage(cfg.Web.DefaultResultsPerPage)
	s.store.SetCacheTTL(cfg.Cache.CountTTL())
}

// handleHome renders the search page, and the results when a search was
// submitted.
func (s *WebServer) handleHome(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	params, err := search.ParseParams(values, s.apiServer.DefaultResultsPerPage())

	data := types.PageData{
		Title:          "Cercador de paremiotipus",
		Version:        version.APIVersion(),
		Query:          params.Query,
		Mode:           search.ParseMode(params.Mode).String(),
		Variant:        params.Fields.Variant,
		Synonym:        params.Fields.Synonym,
		Equivalent:     params.Fields.Equivalent,
		Font:           params.Font,
		ResultsPerPage: params.ResultsPerPage,
		Modes:          modeOptions(),
		PerPageOptions: perPageOptions(),
		Fonts:          s.fontOptions(r.Context()),
	}

	if errors.Is(err, search.ErrQueryTooLong) {
		data.Error = fmt.Sprintf("La cerca no pot superar els %d caràcters.", search.MaxQueryLength)
	} else if values.Has(search.ParamQuery) || values.Has(search.ParamFont) {
		results, err := s.apiServer.Search().Search(r.Context(), params)
		if err != nil {
			data.Error = "La cerca s'ha interromput."
		} else {
			data.Searched = true
			data.Summary = results.Summary
			data.Results = results.Titles
			data.Offset = results.Offset
			data.CurrentPage = results.Params.Page
			data.TotalPages = results.PageCount
			data.TotalCount = results.Total
			data.PageURL = func(page int) string {
				p := results.Params
				p.Page = page
				return "/?" + p.Values().Encode()
			}
			if results.Degraded {
				data.Error = "No s'ha pogut completar la cerca. Proveu una cerca més senzilla."
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Search(data).Render(r.Context(), w); err != nil {
		http.Error(w, fmt.Sprintf("Template error: %v", err), http.StatusInternalServerError)
	}
}

func (s *WebServer) fontOptions(ctx context.Context) []types.Option {
	fonts, err := s.store.Fonts(ctx)
	if err != nil {
		s.logger.Warnf("listing fonts: %v", err)
		return nil
	}
	options := make([]types.Option, len(fonts))
	for i, f := range fonts {
		options[i] = types.Option{Value: f.ID, Label: f.Title}
	}
	return options
}

func modeOptions() []types.Option {
	options := make([]types.Option, len(search.Modes))
	for i, m := range search.Modes {
		options[i] = types.Option{Value: m.String(), Label: m.Title()}
	}
	return options
}

func perPageOptions() []types.Option {
	options := make([]types.Option, 0, len(search.ResultsPerPageOptions)+1)
	for _, n := range search.ResultsPerPageOptions {
		options = append(options, types.Option{Value: strconv.Itoa(n), Label: strconv.Itoa(n)})
	}
	return append(options, types.Option{Value: search.ShowAllToken, Label: "Tots"})
}
