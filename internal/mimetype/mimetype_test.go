package mimetype

import (
	"mime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestResolve_Overrides verifies every entry of the override table.
func TestResolve_Overrides(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/app.js", "application/javascript"},
		{"/v86.wasm", "application/wasm"},
		{"/style.css", "text/css"},
		{"/index.html", "text/html"},
		{"/logo.png", "image/png"},
		{"/photo.jpg", "image/jpeg"},
		{"/photo.jpeg", "image/jpeg"},
		{"/favicon.ico", "image/x-icon"},
		{"/nested/dir/lib.min.js", "application/javascript"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.path))
			got, ok := Lookup(tt.path)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestLookup_CaseSensitive verifies that suffix matching does not normalize
// case: "/APP.JS" is not an override hit.
func TestLookup_CaseSensitive(t *testing.T) {
	_, ok := Lookup("/APP.JS")
	assert.False(t, ok)
	_, ok = Lookup("/Index.HTML")
	assert.False(t, ok)
}

// TestLookup_SuffixOnly verifies that only the literal suffix counts.
func TestLookup_SuffixOnly(t *testing.T) {
	for _, p := range []string{"/app.js.map", "/wasm", "/css/", "/archive.png.gz", "/"} {
		_, ok := Lookup(p)
		assert.False(t, ok, "%q must not match the override table", p)
	}
}

// TestResolve_Fallback verifies that paths outside the table delegate to the
// platform database and that unknown extensions resolve to "" without error.
func TestResolve_Fallback(t *testing.T) {
	assert.Equal(t, mime.TypeByExtension(".svg"), Resolve("/icon.svg"))
	assert.Equal(t, mime.TypeByExtension(".JS"), Resolve("/APP.JS"))
	assert.Equal(t, "", Resolve("/data.unknownext"))
	assert.Equal(t, "", Resolve("/README"))
	assert.Equal(t, "", Resolve("/"))
}
