package server

import "net/http"

// devHeaders is the header set attached to every response. The values are
// a compatibility surface for browser clients and must not change.
var devHeaders = [][2]string{
	{"Access-Control-Allow-Origin", "*"},
	{"Access-Control-Allow-Methods", "GET, POST, OPTIONS"},
	{"Access-Control-Allow-Headers", "Content-Type"},
	{"Cache-Control", "no-cache, no-store, must-revalidate"},
	{"Pragma", "no-cache"},
	{"Expires", "0"},
}

func applyDevHeaders(h http.Header) {
	for _, kv := range devHeaders {
		h.Set(kv[0], kv[1])
	}
}

// headerWriter injects devHeaders at the moment the status line is
// committed, so they override anything the wrapped handler set or removed
// (http.Error strips Cache-Control on file-server errors).
type headerWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *headerWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		applyDevHeaders(w.Header())
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *headerWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *headerWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// WithDevHeaders wraps next so that every response, whatever its status,
// carries the CORS and no-cache headers. CORS preflight requests (OPTIONS)
// are answered directly with 204 No Content.
func WithDevHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hw := &headerWriter{ResponseWriter: w}

		if r.Method == http.MethodOptions {
			hw.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(hw, r)

		// A handler that returns without writing anything still gets an
		// implicit 200 from net/http; make sure it is decorated too.
		if !hw.wroteHeader {
			hw.WriteHeader(http.StatusOK)
		}
	})
}
