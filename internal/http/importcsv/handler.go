package importcsv

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dompet/internal/importer"
	"github.com/MrJamesThe3rd/dompet/internal/logger"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importFile)
}

type recordDTO struct {
	Timestamp string               `json:"timestamp"`
	Type      transaction.Type     `json:"type"`
	Amount    int64                `json:"amount"`
	Category  transaction.Category `json:"category"`
	Note      string               `json:"note"`
}

type importResponse struct {
	Imported   int         `json:"imported"`
	Duplicates int         `json:"duplicates"`
	Records    []recordDTO `json:"records"`
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := h.importSvc.Import(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.txSvc.Import(r.Context(), records)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).
			Int("imported", len(result.Imported)).
			Msg("import stopped")
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	log := logger.FromContext(r.Context())
	log.Info().
		Int("imported", len(result.Imported)).
		Int("duplicates", len(result.Duplicates)).
		Msg("file imported")

	resp := importResponse{
		Imported:   len(result.Imported),
		Duplicates: len(result.Duplicates),
		Records:    make([]recordDTO, 0, len(result.Imported)),
	}

	for _, rec := range result.Imported {
		resp.Records = append(resp.Records, recordDTO{
			Timestamp: rec.Timestamp,
			Type:      rec.Type,
			Amount:    rec.Amount,
			Category:  rec.Category,
			Note:      rec.Note,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("failed to encode response")
	}
}
