package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/dompet/internal/http/export"
	"github.com/MrJamesThe3rd/dompet/internal/http/importcsv"
	reqlog "github.com/MrJamesThe3rd/dompet/internal/http/middleware"
	"github.com/MrJamesThe3rd/dompet/internal/http/summary"
	"github.com/MrJamesThe3rd/dompet/internal/http/transaction"
)

func New(
	log zerolog.Logger,
	transactionsV1 *transaction.Handler,
	summaryV1 *summary.Handler,
	exportV1 *export.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(reqlog.Logger(log))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", transactionsV1.Routes)
		r.Route("/summary", summaryV1.Routes)
		r.Route("/export", exportV1.Routes)
		r.Route("/import", importV1.Routes)
	})

	return router
}
