package handler

import (
	"context"
	"encoding/xml"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/forgo/guild/api/internal/model"
	"github.com/forgo/guild/api/internal/view"
)

// SpotsCounter supplies the landing page spots line
type SpotsCounter interface {
	Spots(ctx context.Context) (*model.SpotsSummary, error)
}

// Pinger checks a dependency for the health endpoint
type Pinger interface {
	Ping(ctx context.Context) error
}

// PagesHandler serves the server-rendered site
type PagesHandler struct {
	site  view.Site
	spots SpotsCounter
	store Pinger
	now   func() time.Time
}

// PagesHandlerConfig holds dependencies for the pages handler
type PagesHandlerConfig struct {
	Site  view.Site
	Spots SpotsCounter
	Store Pinger
}

// NewPagesHandler creates a new pages handler
func NewPagesHandler(cfg PagesHandlerConfig) *PagesHandler {
	return &PagesHandler{
		site:  cfg.Site,
		spots: cfg.Spots,
		store: cfg.Store,
		now:   time.Now,
	}
}

// Landing handles GET /
func (h *PagesHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.render(w, r, http.StatusNotFound, view.NotFound(h.site))
		return
	}

	var spots *model.SpotsSummary
	if h.spots != nil {
		s, err := h.spots.Spots(r.Context())
		if err != nil {
			slog.WarnContext(r.Context(), "landing spots unavailable", slog.String("error", err.Error()))
		} else {
			spots = s
		}
	}
	h.render(w, r, http.StatusOK, view.Landing(h.site, spots))
}

// Privacy handles GET /privacy
func (h *PagesHandler) Privacy(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.Privacy(h.site))
}

// Unsubscribe handles GET /unsubscribe?token=...
func (h *PagesHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.Unsubscribe(h.site, r.URL.Query().Get("token")))
}

func (h *PagesHandler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, r)
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap handles GET /sitemap.xml
func (h *PagesHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	base := strings.TrimSuffix(h.site.BaseURL, "/")
	lastMod := h.now().UTC().Format(time.RFC3339)

	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: base, LastMod: lastMod, ChangeFreq: "weekly", Priority: "1.0"},
			{Loc: base + "/privacy", LastMod: lastMod, ChangeFreq: "monthly", Priority: "0.3"},
		},
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		slog.ErrorContext(r.Context(), "sitemap encode failed", slog.String("error", err.Error()))
	}
}

// Robots handles GET /robots.txt
func (h *PagesHandler) Robots(w http.ResponseWriter, r *http.Request) {
	base := strings.TrimSuffix(h.site.BaseURL, "/")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: " + base + "/sitemap.xml\n"))
}

// Health handles GET /health
func (h *PagesHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", slog.String("error", err.Error()))
			WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "store": "unreachable"})
			return
		}
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
