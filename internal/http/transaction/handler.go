package transaction

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/dompet/internal/logger"
	"github.com/MrJamesThe3rd/dompet/internal/speech"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

const maxAudioBytes = 25 << 20

type Handler struct {
	svc      *transaction.Service
	validate *validator.Validate
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/", h.create)
		r.Post("/preview", h.preview)
	})
	r.Post("/voice", h.voice)
	r.Get("/", h.list)
}

type textRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

func (h *Handler) decodeText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}

	return req.Text, true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	text, ok := h.decodeText(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Record(r.Context(), text)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrAmountNotFound):
			http.Error(w, "amount not found in text", http.StatusUnprocessableEntity)
		case errors.Is(err, transaction.ErrEmptyText):
			http.Error(w, "text is empty", http.StatusBadRequest)
		default:
			log := logger.FromContext(r.Context())
			log.Error().Err(err).Msg("failed to record transaction")
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	writeJSON(w, r, http.StatusCreated, toResponse(rec))
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	text, ok := h.decodeText(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, toDraftResponse(h.svc.Preview(text)))
}

func (h *Handler) voice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes+1<<20)

	file, header, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "missing audio file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read audio", http.StatusBadRequest)
		return
	}

	rec, transcript, err := h.svc.RecordVoice(r.Context(), audio, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, speech.ErrDisabled):
			http.Error(w, "speech recognition is disabled", http.StatusServiceUnavailable)
		case errors.Is(err, transaction.ErrTranscription):
			log := logger.FromContext(r.Context())
			log.Warn().Err(err).Msg("transcription failed")
			http.Error(w, "transcription failed", http.StatusBadGateway)
		case errors.Is(err, transaction.ErrAmountNotFound), errors.Is(err, transaction.ErrEmptyText):
			writeJSON(w, r, http.StatusUnprocessableEntity, voiceResponse{
				Transcript: transcript,
				Error:      "amount not found in transcript",
			})
		default:
			log := logger.FromContext(r.Context())
			log.Error().Err(err).Msg("failed to record voice note")
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	resp := toResponse(rec)
	writeJSON(w, r, http.StatusCreated, voiceResponse{Record: &resp, Transcript: transcript})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		records []transaction.Record
		err     error
	)

	if s := r.URL.Query().Get("period"); s != "" {
		period, perr := transaction.ParsePeriod(s)
		if perr != nil {
			http.Error(w, perr.Error(), http.StatusBadRequest)
			return
		}

		records, err = h.svc.ListPeriod(r.Context(), period)
	} else {
		records, err = h.svc.List(r.Context())
	}

	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("failed to list transactions")
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, r, http.StatusOK, toResponseList(records))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("failed to encode response")
	}
}
