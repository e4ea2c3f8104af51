// Package ui hosts the dashboard pages: workforce, financial and
// construction uploads plus the document explorer.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"siteboard/adapters/excel"
	"siteboard/adapters/tabular"
	"siteboard/domain/metrics"
	"siteboard/internal"
	"siteboard/internal/cache"
	"siteboard/internal/config"
	"siteboard/internal/docsearch"
	"siteboard/ports"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// freqChart pairs a heading with a frequency table for the bar fragment
type freqChart struct {
	Heading string
	Table   metrics.FrequencyTable
}

// App represents the dashboard application
type App struct {
	router    *chi.Mux
	templates *template.Template
	loader    ports.TableLoader
	cache     *cache.LoaderCache
	exporter  *excel.Exporter
	searcher  ports.DocumentSearcher
	logger    *internal.Logger
	cfg       *config.Config
}

// NewApp wires the loader, cache, exporter and searcher behind the router
func NewApp(cfg *config.Config) (*App, error) {
	funcMap := template.FuncMap{
		"barWidth": func(count, max int) float64 {
			if max == 0 {
				return 0
			}
			return float64(count) / float64(max) * 100
		},
		// FrequencyTable is ordered by descending count, so the first
		// entry scales every bar
		"freqMax": func(ft metrics.FrequencyTable) int {
			if len(ft) == 0 {
				return 0
			}
			return ft[0].Count
		},
		"money": func(f float64) string {
			return fmt.Sprintf("$%.2f", f)
		},
		"freq": func(heading string, ft metrics.FrequencyTable) freqChart {
			return freqChart{Heading: heading, Table: ft}
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	loaderCache := cache.New(tabular.NewReader(), cfg.Cache.Capacity, cfg.Cache.TTL)

	app := &App{
		router:    chi.NewRouter(),
		templates: templates,
		loader:    loaderCache,
		cache:     loaderCache,
		exporter:  excel.NewExporter(),
		searcher:  docsearch.NewSearcher(),
		logger:    internal.DefaultLogger,
		cfg:       cfg,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Pages
	a.router.Get("/", a.handleHRPage)
	a.router.Get("/financial", a.handleFinancialPage)
	a.router.Get("/construction", a.handleConstructionPage)
	a.router.Get("/documents", a.handleDocumentsPage)

	// Uploads re-render the page with the computed report
	a.router.Post("/hr/upload", a.handleHRUpload)
	a.router.Post("/financial/upload", a.handleFinancialUpload)
	a.router.Post("/construction/upload", a.handleConstructionUpload)

	// JSON metrics for charting clients
	a.router.Post("/api/hr/metrics", a.handleHRMetricsJSON)
	a.router.Post("/api/financial/metrics", a.handleFinancialMetricsJSON)
	a.router.Post("/api/construction/metrics", a.handleConstructionMetricsJSON)
	a.router.Get("/api/documents", a.handleDocumentsJSON)

	// Workbook downloads
	a.router.Post("/api/hr/export", a.handleHRExport)
	a.router.Post("/api/financial/export", a.handleFinancialExport)
	a.router.Post("/api/construction/export", a.handleConstructionExport)
}

// Handler exposes the router for tests
func (a *App) Handler() http.Handler { return a.router }

// Start starts the HTTP server
func (a *App) Start() error {
	addr := a.cfg.Server.Host + ":" + a.cfg.Server.Port
	a.logger.Info("starting siteboard on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Close stops the loader cache eviction loop
func (a *App) Close() {
	a.cache.Stop()
}

// renderTemplate executes a page template
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("template %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
