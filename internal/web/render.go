package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/steer-dev/steer/internal/errors"
	"github.com/steer-dev/steer/internal/rule"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "browsers", "rules", "resolve", "help"
}

// BrowsersPageData is the template data for the browser list page.
type BrowsersPageData struct {
	PageData
	Browsers []rule.Browser
}

// RulesPageData is the template data for the rule list page.
type RulesPageData struct {
	PageData
	Rules    []rule.Rule
	Browsers []rule.Browser
}

// ResolvePageData is the template data for the resolve preview page.
type ResolvePageData struct {
	PageData
	URL      string
	HasQuery bool
	Match    *rule.Match
}

// HelpPageData is the template data for the rendered usage guide.
type HelpPageData struct {
	PageData
	GuideHTML template.HTML
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"browsers": "browsers.html",
		"rules":    "rules.html",
		"resolve":  "resolve.html",
		"help":     "help.html",
		"error":    "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var rErr *errors.RouteError
	if !stderrors.As(err, &rErr) {
		rErr = errors.NewInternal(err)
	}

	// JSON request
	if strings.Contains(req.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rErr.Status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    string(rErr.Code),
				"message": rErr.Message,
				"status":  rErr.Status,
			},
		})
		return
	}

	// Full error page
	r.renderPageStatus(w, rErr.Status, "error", ErrorPageData{
		PageData: PageData{
			Title:   "Error",
			Version: r.version,
		},
		StatusCode: rErr.Status,
		Message:    rErr.Message,
	})
}
