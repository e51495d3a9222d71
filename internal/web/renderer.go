// Package web adapts the embedded html/template set to Echo's renderer
// interface. One layout wraps every page; pages are parsed individually
// so a broken template fails at startup, not mid-request.
package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/univmedia/campusnews/views/helpers"
)

type Renderer struct {
	templates map[string]*template.Template
}

var funcs = template.FuncMap{
	"cx":          helpers.Cx,
	"formatCount": helpers.FormatCount,
	"formatDate":  helpers.FormatDate,
	"excerpt":     helpers.Excerpt,
}

// NewRenderer parses every page template against the shared layout.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	const layout = "templates/layout.html"

	pages, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		if page == layout {
			continue
		}
		t, err := template.New(path.Base(layout)).Funcs(funcs).ParseFS(fsys, layout, page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		name := strings.TrimSuffix(path.Base(page), ".html")
		templates[name] = t
	}

	return &Renderer{templates: templates}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
