package server

import (
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Options configures the request handler.
type Options struct {
	// Root is the document root. Files are only ever read from it.
	Root string

	// API enables the ISO catalogue under /api. When false, /api is an
	// ordinary path of the document root.
	API bool
}

// NewRouter builds the full handler tree: dev headers on every response,
// the optional /api sub-router, and the static file server for everything
// else.
func NewRouter(opts Options, logger *logrus.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(WithDevHeaders)
	r.Use(middleware.Recoverer)

	if opts.API {
		cat := &isoCatalogue{fsys: os.DirFS(opts.Root), logger: logger}
		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.GetHead)
			r.Get("/isos", cat.list)
			r.Get("/iso/{name}", cat.stream)
			r.NotFound(apiNotFound)
		})
	}

	r.Handle("/*", StaticHandler(opts.Root))
	return r
}
