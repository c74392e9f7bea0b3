// Package mimetype resolves response content types from request paths.
//
// A small override table is consulted first so that the types browsers are
// strict about (scripts, WebAssembly, stylesheets) never depend on the host
// operating system's MIME database. Anything not in the table is delegated
// to mime.TypeByExtension.
package mimetype

import (
	"mime"
	"path"
	"strings"
)

// Override maps one exact path suffix to a content type.
type Override struct {
	Suffix      string
	ContentType string
}

// Table is the ordered override list. Suffixes are compared case-sensitively
// against the literal request path; the first match wins.
var Table = []Override{
	{Suffix: ".js", ContentType: "application/javascript"},
	{Suffix: ".wasm", ContentType: "application/wasm"},
	{Suffix: ".css", ContentType: "text/css"},
	{Suffix: ".html", ContentType: "text/html"},
	{Suffix: ".png", ContentType: "image/png"},
	{Suffix: ".jpg", ContentType: "image/jpeg"},
	{Suffix: ".jpeg", ContentType: "image/jpeg"},
	{Suffix: ".ico", ContentType: "image/x-icon"},
}

// Lookup returns the override content type for p, if any.
func Lookup(p string) (string, bool) {
	for _, o := range Table {
		if strings.HasSuffix(p, o.Suffix) {
			return o.ContentType, true
		}
	}
	return "", false
}

// Resolve returns the content type for p: the override table first, then
// the platform's extension database. It returns "" when neither knows the
// extension, leaving the decision to the caller (http.FileServer sniffs the
// body and finally falls back to application/octet-stream).
func Resolve(p string) string {
	if ct, ok := Lookup(p); ok {
		return ct
	}
	ext := path.Ext(p)
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}
