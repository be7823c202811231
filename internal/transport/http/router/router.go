package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/webstack-labs/account-service/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
}

type ImageHandler interface {
	Attach(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health  HealthHandler
	Account AccountHandler
	Image   ImageHandler

	AuthMW func(http.Handler) http.Handler

	// MetricsHandler serves GET /metrics (promhttp). Optional.
	MetricsHandler http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Account == nil {
		return nil, fmt.Errorf("nil Account handler")
	}
	if deps.Image == nil {
		return nil, fmt.Errorf("nil Image handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)

	r.Get("/healthz", deps.Health.Healthz)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/accounts", deps.Account.Register)
		r.Get("/verify", deps.Account.Verify) // ?email=...&token=...

		r.Route("/accounts/self", func(r chi.Router) {
			r.Use(deps.AuthMW)

			r.Get("/", deps.Account.Me)
			r.Put("/", deps.Account.UpdateProfile)

			r.Route("/image", func(r chi.Router) {
				r.Post("/", deps.Image.Attach)
				r.Get("/", deps.Image.Get)
				r.Delete("/", deps.Image.Remove)
			})
		})
	})

	return r, nil
}
