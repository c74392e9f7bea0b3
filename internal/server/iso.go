package server

import (
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/shinji-kodama/devserve/internal/model"
)

const isoExt = ".iso"

// distroNames maps a lowercase substring of an image's file name to its
// display name. Order matters: the first key contained in the name wins.
var distroNames = []struct {
	key  string
	name string
}{
	{"ubuntu", "Ubuntu"},
	{"debian", "Debian"},
	{"centos", "CentOS"},
	{"fedora", "Fedora"},
	{"opensuse", "openSUSE"},
	{"mint", "Linux Mint"},
	{"manjaro", "Manjaro"},
	{"arch", "Arch Linux"},
	{"kali", "Kali Linux"},
	{"alpine", "Alpine Linux"},
	{"tinycore", "Tiny Core Linux"},
	{"dsl", "Damn Small Linux"},
	{"puppy", "Puppy Linux"},
}

// isoCatalogue serves the disk images found at the top level of the
// document root.
type isoCatalogue struct {
	fsys   fs.FS
	logger *logrus.Logger
}

func hasISOExt(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), isoExt)
}

// ListISOs returns one entry per regular *.iso file (extension matched
// case-insensitively) at the top level of fsys, sorted by file name.
func ListISOs(fsys fs.FS) ([]model.ISOEntry, error) {
	dirEntries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	entries := make([]model.ISOEntry, 0)
	for _, de := range dirEntries {
		if !de.Type().IsRegular() || !hasISOExt(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			return nil, err
		}
		// Only the first lowercase ".iso" is dropped; "FOO.ISO" keeps its
		// extension in the display name.
		stem := strings.Replace(de.Name(), isoExt, "", 1)
		entries = append(entries, model.ISOEntry{
			ID:       ISOID(de.Name()),
			Name:     DistroName(stem),
			FileName: de.Name(),
			Size:     info.Size(),
			Modified: info.ModTime().UTC(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].FileName < entries[j].FileName
	})
	return entries, nil
}

// ISOID replaces every rune outside [a-zA-Z0-9] with an underscore.
func ISOID(fileName string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, fileName)
}

// DistroName turns an image stem into a display name: a known distribution
// name when the stem mentions one, otherwise the stem in title case with
// dashes and underscores turned into single spaces.
//
//	"archlinux-2024.01.01-x86_64" → "Arch Linux"
//	"my_custom-os"                → "My Custom Os"
func DistroName(stem string) string {
	lower := strings.ToLower(stem)
	for _, d := range distroNames {
		if strings.Contains(lower, d.key) {
			return d.name
		}
	}

	spaced := strings.NewReplacer("-", " ", "_", " ").Replace(stem)

	var b strings.Builder
	prevWord := false
	for _, r := range spaced {
		word := r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
		if word && !prevWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevWord = word
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func (c *isoCatalogue) list(w http.ResponseWriter, _ *http.Request) {
	entries, err := ListISOs(c.fsys)
	if err != nil {
		c.logger.WithError(err).Warn("failed to list ISO images")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch ISO list"})
		return
	}
	for _, e := range entries {
		c.logger.Debugf("catalogue entry %s", e)
	}
	writeJSON(w, http.StatusOK, entries)
}

// validISOName accepts a bare *.iso file name with no directory component.
func validISOName(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return false
	}
	return fs.ValidPath(name) && hasISOExt(name)
}

// isoNameParam returns the decoded {name} segment. chi matches against
// RawPath when the request carries one and against the already decoded
// Path otherwise, so only the former is unescaped.
func isoNameParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

func (c *isoCatalogue) stream(w http.ResponseWriter, r *http.Request) {
	name, err := isoNameParam(r)
	if err != nil || !validISOName(name) {
		http.Error(w, "ISO not found", http.StatusNotFound)
		return
	}

	f, err := c.fsys.Open(name)
	if err != nil {
		http.Error(w, "ISO not found", http.StatusNotFound)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		http.Error(w, "ISO not found", http.StatusNotFound)
		return
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		c.logger.Warnf("file %s does not support seeking", name)
		http.Error(w, "Failed to fetch ISO", http.StatusInternalServerError)
		return
	}

	// ServeContent answers Range requests with 206 and Content-Range.
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeContent(w, r, name, info.ModTime(), rs)
}

func apiNotFound(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Not Found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
