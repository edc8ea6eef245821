package web

import (
	"bytes"
	_ "embed"
	"html/template"
	"log"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/steer-dev/steer/internal/config"
	"github.com/steer-dev/steer/internal/store"
)

//go:embed guide.md
var guideMarkdown []byte

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	store    *store.Store
	cfg      *config.Config
	renderer *Renderer
}

// HandleBrowsers handles GET /browsers: configured browsers in stored order.
func (h *Handlers) HandleBrowsers(w http.ResponseWriter, _ *http.Request) {
	h.renderer.renderPage(w, "browsers", BrowsersPageData{
		PageData: PageData{
			Title:   "Browsers",
			Version: h.renderer.version,
			Nav:     "browsers",
		},
		Browsers: h.store.Browsers(),
	})
}

// HandleBrowserDelete handles DELETE /browsers/{id}.
// Rules targeting the removed browser are deleted with it.
func (h *Handlers) HandleBrowserDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveBrowser(r.PathValue("id")); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRules handles GET /rules: routing rules in evaluation order.
func (h *Handlers) HandleRules(w http.ResponseWriter, _ *http.Request) {
	h.renderer.renderPage(w, "rules", RulesPageData{
		PageData: PageData{
			Title:   "Rules",
			Version: h.renderer.version,
			Nav:     "rules",
		},
		Rules:    h.store.Rules(),
		Browsers: h.store.Browsers(),
	})
}

// HandleRuleDelete handles DELETE /rules/{id}.
func (h *Handlers) HandleRuleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveRule(r.PathValue("id")); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleResolve handles GET /resolve: a dry-run preview of the routing engine.
func (h *Handlers) HandleResolve(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")

	data := ResolvePageData{
		PageData: PageData{
			Title:   "Resolve",
			Version: h.renderer.version,
			Nav:     "resolve",
		},
		URL: rawURL,
	}

	if rawURL != "" {
		data.HasQuery = true
		m, err := h.store.Resolve(rawURL)
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		data.Match = m
	}

	h.renderer.renderPage(w, "resolve", data)
}

// HandleHelp handles GET /help: the embedded usage guide rendered as HTML.
func (h *Handlers) HandleHelp(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := goldmark.Convert(guideMarkdown, &buf); err != nil {
		log.Printf("failed rendering guide: %v", err)
	}

	h.renderer.renderPage(w, "help", HelpPageData{
		PageData: PageData{
			Title:   "Help",
			Version: h.renderer.version,
			Nav:     "help",
		},
		GuideHTML: template.HTML(buf.String()),
	})
}
