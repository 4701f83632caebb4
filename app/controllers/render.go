package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Template ids understood by Renderer.
const (
	TemplateList    = "list"
	TemplateDetail  = "detail"
	TemplateShare   = "share"
	TemplateComment = "comment"
)

var templateFiles = map[string][]string{
	TemplateList:    {"layout.html", "posts/list.html", "shared/pagination.html"},
	TemplateDetail:  {"layout.html", "posts/detail.html", "shared/comment_form.html"},
	TemplateShare:   {"layout.html", "posts/share.html"},
	TemplateComment: {"layout.html", "posts/comment.html", "shared/comment_form.html"},
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("Jan. 2, 2006, 3:04 p.m.")
	},
	"truncatewords": truncateWords,
	"inc": func(i int) int {
		return i + 1
	},
}

// Renderer executes the page templates parsed from a views filesystem.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page template from fsys.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(templateFiles))
	for name, files := range templateFiles {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		templates[name] = tmpl
	}
	return &Renderer{templates: templates}, nil
}

// Render writes the named page. The output is buffered so that a template
// failure never leaves a half written page behind.
func (rr *Renderer) Render(w http.ResponseWriter, name string, data interface{}) error {
	tmpl, ok := rr.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + " …"
}

// Helper functions for consistent response handling

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}

// respond answers with JSON or the rendered page, depending on Accept.
func respond(w http.ResponseWriter, r *http.Request, rr *Renderer, log *zap.Logger, name string, data interface{}) {
	if wantsJSON(r) {
		sendJSON(w, data)
		return
	}
	if err := rr.Render(w, name, data); err != nil {
		log.Error("render failed", zap.String("template", name), zap.Error(err))
		sendError(w, r, "Internal Server Error", http.StatusInternalServerError)
	}
}

// absoluteURL joins path onto baseURL, or onto the scheme and host the
// request arrived on when no base URL is configured.
func absoluteURL(r *http.Request, baseURL, path string) string {
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/") + path
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + path
}
