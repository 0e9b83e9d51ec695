// Package web serves the browser pages that drive the ordering and
// maintenance screens.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
)

//go:embed pages/*.html static/*
var embedded embed.FS

// Site resolves pages and assets from the embedded tree, or from Dir when set
// so the pages can be edited without a rebuild.
type Site struct {
	files fs.FS
}

func New(dir string) *Site {
	if dir != "" {
		return &Site{files: os.DirFS(dir)}
	}
	return &Site{files: embedded}
}

// Page serves pages/<name>.html.
func (s *Site) Page(name string) http.HandlerFunc {
	path := "pages/" + name + ".html"
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := fs.ReadFile(s.files, path)
		if err != nil {
			http.Error(w, name+".html not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

// Assets serves static/*. Mount it at /static/ so request paths line up
// with the tree.
func (s *Site) Assets() http.Handler {
	return http.FileServerFS(s.files)
}
