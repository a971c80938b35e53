package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SPAHandler serves the built client. Paths that do not name a file fall
// back to index.html so client-side routes survive a reload; unknown /api/
// paths get a JSON 404 instead.
type SPAHandler struct {
	root       string
	fileServer http.Handler
}

// NewSPAHandler creates a handler for the static files under root
func NewSPAHandler(root string) *SPAHandler {
	return &SPAHandler{
		root:       root,
		fileServer: http.FileServer(http.Dir(root)),
	}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		respondWithError(w, http.StatusNotFound, ErrNotFound, "", nil)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	info, err := os.Stat(filepath.Join(h.root, filepath.FromSlash(clean)))
	if err == nil && !info.IsDir() {
		h.fileServer.ServeHTTP(w, r)
		return
	}

	index := filepath.Join(h.root, "index.html")
	if _, err := os.Stat(index); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, index)
}
