package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/dompet/internal/amount"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Append(ctx context.Context, rec Record) error
	ListAll(ctx context.Context) ([]Record, error)
}

type Classifier interface {
	Classify(text string) (Type, Category)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

type Clock interface {
	Now() time.Time
}

type Service struct {
	repo        Repository
	classifier  Classifier
	transcriber Transcriber
	clock       Clock
}

func NewService(repo Repository, classifier Classifier, transcriber Transcriber, clock Clock) *Service {
	return &Service{
		repo:        repo,
		classifier:  classifier,
		transcriber: transcriber,
		clock:       clock,
	}
}

// Draft is what a sentence would be recorded as.
type Draft struct {
	Amount   int64
	Found    bool
	Type     Type
	Category Category
	Note     string
}

func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// Preview resolves and classifies text without persisting anything.
func (s *Service) Preview(text string) Draft {
	amt, found := amount.Resolve(text)
	typ, cat := s.classifier.Classify(text)

	return Draft{
		Amount:   amt,
		Found:    found,
		Type:     typ,
		Category: cat,
		Note:     text,
	}
}

// Record turns text into a ledger record and appends it. Nothing is stored
// when no positive amount can be resolved.
func (s *Service) Record(ctx context.Context, text string) (Record, error) {
	if strings.TrimSpace(text) == "" {
		return Record{}, ErrEmptyText
	}

	draft := s.Preview(text)
	if !draft.Found || draft.Amount <= 0 {
		return Record{}, ErrAmountNotFound
	}

	rec := Record{
		Timestamp: s.clock.Now().Format(time.DateTime),
		Type:      draft.Type,
		Amount:    draft.Amount,
		Category:  draft.Category,
		Note:      draft.Note,
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("appending record: %w", err)
	}

	return rec, nil
}

// RecordVoice transcribes audio and records the transcript. The transcript is
// returned whenever transcription succeeded, even if recording did not.
func (s *Service) RecordVoice(ctx context.Context, audio []byte, mimeType string) (Record, string, error) {
	transcript, err := s.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return Record{}, "", fmt.Errorf("%w: %w", ErrTranscription, err)
	}

	rec, err := s.Record(ctx, transcript)

	return rec, transcript, err
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	return records, nil
}

// ListPeriod returns the records inside period, relative to the clock.
func (s *Service) ListPeriod(ctx context.Context, period Period) ([]Record, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	return Filter(period, s.clock.Now(), records), nil
}

func (s *Service) Summarize(ctx context.Context, period Period) (Summary, error) {
	records, err := s.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	return Summarize(period, s.clock.Now(), records), nil
}
