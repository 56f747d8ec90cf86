// Package httpapi assembles the chi router, middleware stack and static
// file mounts around the handler set.
package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loomcraft/internal/http/handlers"
	"loomcraft/internal/middleware"
)

type RouterOptions struct {
	AllowedOrigins []string
	DefaultLocale  string
	RateLimit      int
	CountryLookup  middleware.CountryLookup
	StaticDir      string
}

func NewRouter(app *handlers.App, opts RouterOptions) stdhttp.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
		middleware.Metrics,
	)
	if opts.RateLimit > 0 {
		r.Use(middleware.RateLimit(opts.RateLimit, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)
	r.Handle("/metrics", promhttp.Handler())

	if opts.StaticDir != "" {
		fileServer := stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.Dir(opts.StaticDir)))
		r.Get("/static/*", fileServer.ServeHTTP)
	}

	r.Route("/v1/artisans", func(r chi.Router) {
		r.Post("/register", app.ArtisanRegister)
		r.Post("/login", app.ArtisanLogin)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(app.JWTSecret, middleware.RoleArtisan))
			r.Get("/me", app.ArtisanMe)
			r.Put("/me", app.ArtisanUpdateProfile)
			r.Get("/me/products", app.MyProducts)
		})
	})

	r.Route("/v1/products", func(r chi.Router) {
		r.Get("/", app.CatalogList)
		r.Get("/{id}", app.CatalogGet)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(app.JWTSecret, middleware.RoleArtisan))
			r.Post("/", app.ProductUpload)
			r.Delete("/{id}", app.ProductDelete)
		})
	})

	r.Get("/v1/materials", app.Materials)

	r.Route("/v1/recommend", func(r chi.Router) {
		// Previews work anonymously; a valid artisan token lets the
		// caption fall back to the profile's name and location.
		r.Use(middleware.OptionalAuthJWT(app.JWTSecret))
		r.Post("/caption", app.RecommendCaption)
		r.Post("/price", app.RecommendPrice)
	})

	r.Route("/v1/admin", func(r chi.Router) {
		r.Post("/login", app.AdminLogin)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(app.JWTSecret, middleware.RoleAdmin))
			r.Get("/artisans", app.AdminListArtisans)
			r.Get("/artisans/{id}", app.AdminGetArtisan)
			r.Post("/artisans/{id}/verify", app.AdminVerifyArtisan)
			r.Get("/stats", app.AdminStats)
		})
	})

	return r
}
