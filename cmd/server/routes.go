package main

import (
	"net/http"

	"github.com/forgo/guild/api/internal/composition"
	"github.com/forgo/guild/api/internal/handler"
	"github.com/forgo/guild/api/internal/middleware"
	"github.com/forgo/guild/api/internal/model"
	"github.com/forgo/guild/api/internal/service"
	"github.com/forgo/guild/api/internal/view"
)

// routerDeps holds everything the router needs
type routerDeps struct {
	Waitlist *service.WaitlistService
	Admin    *service.AdminService
	// Tokens validates admin JWTs. Nil when admin login is not configured.
	Tokens         middleware.TokenValidator
	Registry       *composition.Registry
	Site           view.Site
	AllowedOrigins []string
	TrustProxy     bool
	SiteLimiter    *middleware.RateLimiter
	LoginLimiter   *middleware.RateLimiter
}

// newRouter builds the site mux and wraps it in the global middleware chain
func newRouter(d routerDeps) http.Handler {
	waitlistHandler := handler.NewWaitlistHandler(d.Waitlist)
	adminHandler := handler.NewAdminHandler(handler.AdminHandlerConfig{
		AdminService:    d.Admin,
		WaitlistService: d.Waitlist,
	})
	pagesHandler := handler.NewPagesHandler(handler.PagesHandlerConfig{
		Site:  d.Site,
		Spots: d.Waitlist,
		Store: d.Waitlist,
	})
	compositionHandler := handler.NewCompositionHandler(d.Registry)

	siteLimit := middleware.SiteRateLimit(d.SiteLimiter, d.TrustProxy)
	loginLimit := middleware.RateLimit(d.LoginLimiter, d.TrustProxy)

	adminOnly := func(h http.HandlerFunc) http.Handler { return adminDisabled }
	if d.Tokens != nil {
		auth := middleware.AdminAuth(d.Tokens)
		adminOnly = func(h http.HandlerFunc) http.Handler { return auth(h) }
	}

	mux := http.NewServeMux()

	// Pages. "/" also renders the 404 page for unknown paths.
	mux.HandleFunc("GET /", pagesHandler.Landing)
	mux.HandleFunc("GET /privacy", pagesHandler.Privacy)
	mux.HandleFunc("GET /unsubscribe", pagesHandler.Unsubscribe)
	mux.HandleFunc("GET /sitemap.xml", pagesHandler.Sitemap)
	mux.HandleFunc("GET /robots.txt", pagesHandler.Robots)
	mux.HandleFunc("GET /health", pagesHandler.Health)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(view.Static())))

	// Waitlist endpoints (public)
	mux.Handle("POST /api/waitlist", siteLimit(http.HandlerFunc(waitlistHandler.Join)))
	mux.Handle("POST /api/unsubscribe", siteLimit(http.HandlerFunc(waitlistHandler.Unsubscribe)))
	mux.HandleFunc("GET /api/waitlist/spots", waitlistHandler.Spots)

	// Admin endpoints
	mux.Handle("POST /api/admin/login", loginLimit(http.HandlerFunc(adminHandler.Login)))
	mux.Handle("GET /api/admin/signups", adminOnly(adminHandler.ListSignups))
	mux.Handle("GET /api/admin/signups/export", adminOnly(adminHandler.ExportCSV))
	mux.Handle("GET /api/admin/stats", adminOnly(adminHandler.Stats))

	// Composition endpoints
	mux.HandleFunc("GET /api/compositions", compositionHandler.List)
	mux.HandleFunc("GET /api/compositions/{id}", compositionHandler.Get)
	mux.HandleFunc("GET /api/compositions/{id}/frames/{frame}", compositionHandler.Frame)

	return middleware.Chain(
		mux,
		middleware.Recovery,
		middleware.RequestID,
		middleware.Logger,
		middleware.SecurityHeaders(d.Site.AssetOrigin),
		middleware.CORS(d.AllowedOrigins),
		middleware.Compress,
	)
}

var adminDisabled = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	handler.WriteError(w, model.NewNotFoundError("admin dashboard"))
})
