package export

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dompet/internal/export"
	"github.com/MrJamesThe3rd/dompet/internal/logger"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var period *transaction.Period

	if s := r.URL.Query().Get("period"); s != "" {
		p, err := transaction.ParsePeriod(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		period = new(p)
	}

	// Buffer the workbook so a failure can still become a 500.
	var buf bytes.Buffer
	if err := h.svc.Export(r.Context(), period, &buf); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("failed to export")
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", h.svc.Filename(period)))

	if _, err := buf.WriteTo(w); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("failed to write workbook")
	}
}
