package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/leadpulse/internal/infra/http/middleware"
)

// Routes groups the handlers mounted by NewRouter.
type Routes struct {
	Leads        *LeadHandler
	Analytics    *AnalyticsHandler
	Exports      *ExportHandler
	Integrations *IntegrationHandler
	Webhook      *WebhookHandler
	Health       *HealthHandler

	CORSOrigins []string
	// WebhookLimiter wraps POST /webhooks/leads when set.
	WebhookLimiter *middleware.RateLimiter
	// RequestLogging enables chi's access log.
	RequestLogging bool
}

func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if rt.RequestLogging {
		r.Use(chimw.Logger)
	}
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", APIKeyHeader},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	r.Get("/health", rt.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/leads", func(r chi.Router) {
			r.Get("/", rt.Leads.List)
			r.Post("/", rt.Leads.Create)
			r.Get("/sources", rt.Leads.Sources)
			r.Get("/export.xlsx", rt.Exports.LeadsXLSX)
			r.Get("/export.pdf", rt.Exports.LeadsPDF)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.Leads.Get)
				r.Patch("/status", rt.Leads.SetStatus)
				r.Patch("/assignee", rt.Leads.Assign)
				r.Post("/notes", rt.Leads.AddNote)
			})
		})

		r.Get("/team", rt.Leads.Team)
		r.Get("/dashboard", rt.Analytics.Dashboard)
		r.Get("/analytics", rt.Analytics.Report)
		r.Get("/analytics/export.xlsx", rt.Exports.AnalyticsXLSX)

		r.Get("/integrations", rt.Integrations.List)
		r.Patch("/integrations/{id}", rt.Integrations.Update)
		r.Post("/integrations/{id}/test", rt.Integrations.Test)
	})

	r.Group(func(r chi.Router) {
		if rt.WebhookLimiter != nil {
			r.Use(rt.WebhookLimiter.Handler)
		}
		r.Post("/webhooks/leads", rt.Webhook.Handle)
	})

	return r
}
