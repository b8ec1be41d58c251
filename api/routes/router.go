package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fuelmywork/fuelmywork-backend/api/controllers"
	"github.com/fuelmywork/fuelmywork-backend/api/middleware"
	"github.com/fuelmywork/fuelmywork-backend/internal/creators"
	"github.com/fuelmywork/fuelmywork-backend/internal/payments"
	"github.com/fuelmywork/fuelmywork-backend/internal/support"
	"github.com/fuelmywork/fuelmywork-backend/pkg/config"
	"github.com/fuelmywork/fuelmywork-backend/pkg/db"
	"github.com/fuelmywork/fuelmywork-backend/pkg/logger"
	"github.com/fuelmywork/fuelmywork-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	MetricsRegistry *prometheus.Registry
	Creators        creators.Service
	Support         support.Service
	Payments        payments.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Route("/creators/{username}", func(r chi.Router) {
			r.Get("/", controllers.GetCreatorProfile(p.Creators, logg))
			r.Get("/supporters", controllers.ListCreatorSupporters(p.Creators, p.Support, logg))
		})
		r.Route("/support", func(r chi.Router) {
			r.Post("/order", controllers.CreateSupportOrder(p.Payments, logg))
			r.Post("/verify", controllers.VerifySupportPayment(p.Payments, p.Redis, cfg.Gateway, logg))
			r.Post("/direct", controllers.SubmitDirectSupport(p.Creators, p.Support, logg))
		})
	})

	r.Route("/api/v1/creator", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/stats", controllers.GetCreatorStats(p.Support, logg))
		r.Get("/pending", controllers.ListPendingPayments(p.Support, logg))
		r.Post("/pending/{entryId}/decide", controllers.DecidePendingPayment(p.Support, logg))
		r.Get("/payments", controllers.ListPayments(p.Support, logg))
		r.Get("/payment-settings", controllers.GetPaymentSettings(p.Creators, logg))
		r.Patch("/payment-settings", controllers.UpdatePaymentSettings(p.Creators, logg))
	})

	return r
}
