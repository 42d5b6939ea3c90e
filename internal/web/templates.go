package web

import (
	"bytes"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

type Templates struct {
	fs   fs.FS
	base *template.Template
}

// NewTemplates parses the layout and partials of fsys. Pages are parsed on
// every render so each one can define its own "content" block.
func NewTemplates(fsys fs.FS) (*Templates, error) {
	base, err := template.ParseFS(fsys, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, err
	}
	return &Templates{fs: fsys, base: base}, nil
}

func (t *Templates) Render(w http.ResponseWriter, name string, data any) error {
	return t.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a full page into a buffer first so a template error
// still produces a clean 500 instead of a half-written page.
func (t *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, err := t.base.Clone()
	if err != nil {
		return err
	}
	if _, err := tmpl.ParseFS(t.fs, "templates/"+name); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

func (t *Templates) RenderPartial(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecutePartial(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

// ExecutePartial writes the partial template name to w.
func (t *Templates) ExecutePartial(w io.Writer, name string, data any) error {
	tmpl, err := t.base.Clone()
	if err != nil {
		return err
	}
	return tmpl.ExecuteTemplate(w, name, data)
}
