package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/invoicely/internal/http/client"
	"github.com/MrJamesThe3rd/invoicely/internal/http/dashboard"
	"github.com/MrJamesThe3rd/invoicely/internal/http/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/http/timeentry"
)

type Options struct {
	// Auth resolves the caller and stores the user id in the request context.
	Auth        func(http.Handler) http.Handler
	CORSOrigins []string
}

func New(
	opts Options,
	clientsV1 *client.Handler,
	invoicesV1 *invoice.Handler,
	timeEntriesV1 *timeentry.Handler,
	dashboardV1 *dashboard.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}

		r.Route("/clients", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			clientsV1.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			invoicesV1.Routes(r)
		})

		r.Route("/time-entries", timeEntriesV1.Routes)

		r.Route("/dashboard", dashboardV1.Routes)
	})

	return router
}
