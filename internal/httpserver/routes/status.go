package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/darrylwest/service-uptime/internal/httpserver/deps"
	"github.com/darrylwest/service-uptime/internal/httpserver/handlers"
	"github.com/darrylwest/service-uptime/internal/httpserver/mw"
)

func init() { Register(registerStatus) }

func registerStatus(r chi.Router, d deps.Deps) {
	r.Route("/status", func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Use(mw.RateLimit(mw.RateLimitConfig{
			Burst:      d.RateLimit.Burst,
			PerMinute:  d.RateLimit.PerMinute,
			MaxClients: 10_000,
			TrustProxy: d.TrustProxy,
		}))
		r.Get("/", handlers.Status(d))
		r.Get("/fleet", handlers.Fleet(d))
	})
}
