package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-courier-panel/internal/http/handlers"
	"service-courier-panel/internal/http/middleware"
	"service-courier-panel/internal/logx"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Logger    logx.Logger
	Base      *handlers.Handlers
	Auth      *handlers.AuthHandler
	Delivery  *handlers.DeliveryHandler
	Courier   *handlers.CourierHandler
	AuthMW    *middleware.Auth
	RateLimit func(http.Handler) http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Observability(d.Logger))
	if d.RateLimit != nil {
		r.Use(d.RateLimit)
	}
	r.Use(chimw.Timeout(10 * time.Second))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth/courier", func(r chi.Router) {
		r.Post("/signup", d.Auth.SignUp)
		r.Post("/signin", d.Auth.SignIn)
	})

	r.Route("/courier", func(r chi.Router) {
		r.Use(d.AuthMW.Handler())

		r.Get("/deliveries", d.Delivery.List)
		r.Put("/deliveries", d.Delivery.UpdateStatus)
		r.Get("/stats", d.Delivery.Stats)
		r.Get("/status", d.Courier.Status)
		r.Put("/status", d.Courier.SetStatus)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
