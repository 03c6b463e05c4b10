package summary

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dompet/internal/logger"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{period}", h.get)
}

type summaryResponse struct {
	Period  transaction.Period `json:"period"`
	Income  int64              `json:"income"`
	Expense int64              `json:"expense"`
	Balance int64              `json:"balance"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	period, err := transaction.ParsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s, err := h.svc.Summarize(r.Context(), period)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("failed to summarize")
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summaryResponse{
		Period:  s.Period,
		Income:  s.Income,
		Expense: s.Expense,
		Balance: s.Balance,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("failed to encode response")
	}
}
