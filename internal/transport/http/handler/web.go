package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/tidechat/tidechat/internal/types"
	"github.com/tidechat/tidechat/web"
)

// SPA serves the embedded chat UI with single-page-app fallback semantics:
// real files are served as-is, unknown API paths get a JSON 404, unknown
// asset-looking paths get a plain 404, and everything else falls back to
// index.html.
func (h *Repo) SPA(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		types.WriteError(w, http.StatusNotFound, "API route not found")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" {
		path = "index.html"
	}

	f, err := web.FS.Open(path)
	if err == nil {
		f.Close()
		http.ServeFileFS(w, r, web.FS, path)
		return
	}
	if !errors.Is(err, fs.ErrNotExist) {
		types.WriteError(w, http.StatusInternalServerError, "Failed to read asset")
		return
	}

	// A dotted path that isn't in the bundle is a missing asset, not a route.
	if strings.Contains(path, ".") {
		http.NotFound(w, r)
		return
	}

	http.ServeFileFS(w, r, web.FS, "index.html")
}
