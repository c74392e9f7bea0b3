package server

import (
	"net/http"

	"github.com/shinji-kodama/devserve/internal/mimetype"
)

// withContentType presets Content-Type from the request path before the
// file server runs. http.FileServer only resolves the type itself when the
// header is absent, so the override table takes precedence.
func withContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := mimetype.Resolve(r.URL.Path); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		next.ServeHTTP(w, r)
	})
}

// StaticHandler serves files under root with the library's default
// resolution (index.html, directory listings, redirects, 404s) and the
// override-first content type.
func StaticHandler(root string) http.Handler {
	return withContentType(http.FileServer(http.Dir(root)))
}
