// Package web serves the three book pages: the latest book, a book's
// details and the full catalog.
package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
	"bookshelf/internal/telemetry"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

//go:embed templates static
var assets embed.FS

//go:generate mockgen -destination=mocks/mock_catalog.go -package=mocks bookshelf/internal/web BookCatalog

// BookCatalog is what the pages need from the books API.
type BookCatalog interface {
	LatestBook(ctx context.Context) (catalog.Book, error)
	BookDetails(ctx context.Context, id int) (catalog.Book, error)
	ListBooks(ctx context.Context) ([]catalog.Book, error)
}

// Server is the presentation server.
type Server struct {
	cfg     *config.Web
	books   BookCatalog
	rec     telemetry.Recorder
	log     *zap.Logger
	router  *httprouter.Router
	render  *render.Render
	limiter *httpx.RateLimitMiddleware
}

// NewServer wires routes and templates. ctx bounds background work such as
// the rate limiter's sweeper.
func NewServer(ctx context.Context, cfg *config.Web, books BookCatalog, rec telemetry.Recorder, log *zap.Logger) *Server {
	if rec == nil {
		rec = telemetry.Nop()
	}
	s := &Server{
		cfg:     cfg,
		books:   books,
		rec:     rec,
		log:     log,
		limiter: httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
	s.initRender()
	s.initRouter()
	return s
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return httpx.Chain(s.router,
		httpx.RecoveryMiddleware(s.log),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(s.log),
		httpx.MetricsMiddleware,
		httpx.SecurityHeadersMiddleware(s.cfg.EnableHSTS),
		s.limiter.Middleware,
	)
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.log.Info("serving book pages",
		zap.String("books_api_url", s.cfg.BooksAPIURL),
		zap.String("prefix", s.cfg.PrefixURLPath),
	)
	return httpx.Serve(ctx, srv, 10*time.Second, s.log)
}

// path prefixes an absolute in-app path with the configured URL prefix.
func (s *Server) path(p string) string {
	return s.cfg.PrefixURLPath + p
}

func (s *Server) initRender() {
	s.render = render.New(render.Options{
		Directory:  "templates",
		FileSystem: &render.EmbedFileSystem{FS: assets},
		Layout:     "base",
		Extensions: []string{".tmpl"},
		Funcs: []template.FuncMap{
			{
				"path": s.path,
				"date": formatDate,
			},
		},
		IsDevelopment: false,
	})
}

func (s *Server) initRouter() {
	s.router = httprouter.New()
	s.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.Text(w, http.StatusNotFound, "Not Found")
	})

	s.handle(http.MethodGet, s.path("/"), s.handleHome)
	s.handle(http.MethodGet, s.path("/details/:id"), s.handleDetails)
	s.handle(http.MethodGet, s.path("/catalog"), s.handleCatalog)

	static, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	files := http.FileServer(http.FS(static))
	s.handle(http.MethodGet, s.path("/static/*filepath"), func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		r.URL.Path = p.ByName("filepath")
		files.ServeHTTP(w, r)
	})

	s.handle(http.MethodGet, "/healthz", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		httpx.Text(w, http.StatusOK, "ok")
	})
	metrics := promhttp.Handler()
	s.handle(http.MethodGet, "/metrics", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		metrics.ServeHTTP(w, r)
	})
}

// handle registers h and labels its requests with the route pattern, since
// httprouter leaves r.Pattern empty.
func (s *Server) handle(method, pattern string, h httprouter.Handle) {
	s.router.Handle(method, pattern, func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		httpx.SetRoute(r, pattern)
		h(w, r, p)
	})
}

func formatDate(d *catalog.Date) string {
	if d == nil {
		return "unknown"
	}
	return d.Format("Jan 2, 2006")
}
