// Package app assembles the services shared by every entry point.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/dompet/internal/classify"
	"github.com/MrJamesThe3rd/dompet/internal/clock"
	"github.com/MrJamesThe3rd/dompet/internal/config"
	"github.com/MrJamesThe3rd/dompet/internal/database"
	"github.com/MrJamesThe3rd/dompet/internal/export"
	"github.com/MrJamesThe3rd/dompet/internal/importer"
	"github.com/MrJamesThe3rd/dompet/internal/sheets"
	"github.com/MrJamesThe3rd/dompet/internal/speech"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
	"github.com/MrJamesThe3rd/dompet/internal/transaction/csvstore"
	"github.com/MrJamesThe3rd/dompet/internal/transaction/mirror"
	"github.com/MrJamesThe3rd/dompet/internal/transaction/sqlitestore"
	txStore "github.com/MrJamesThe3rd/dompet/internal/transaction/store"
)

type App struct {
	Clock        clock.Local
	Transactions *transaction.Service
	Export       *export.Service
	Import       *importer.Service

	closers []io.Closer
}

// New builds the application from cfg. The caller must Close it.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	loc, err := clock.LoadLocation(cfg.App.TZ)
	if err != nil {
		log.Warn().Err(err).Str("fallback", loc.String()).Msg("unknown time zone")
	}

	a := &App{Clock: clock.NewLocal(loc)}

	classifier, err := newClassifier(cfg, log)
	if err != nil {
		return nil, err
	}

	transcriber, err := newTranscriber(ctx, cfg)
	if err != nil {
		return nil, err
	}

	repo, err := a.newRepository(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Transactions = transaction.NewService(repo, classifier, transcriber, a.Clock)
	a.Export = export.NewService(a.Transactions)
	a.Import = importer.NewService(classifier, loc)

	return a, nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}

	a.closers = nil

	return errors.Join(errs...)
}

func newClassifier(cfg *config.Config, log zerolog.Logger) (*classify.Classifier, error) {
	if cfg.App.RulesFile == "" {
		return classify.New(), nil
	}

	c, err := classify.LoadRules(cfg.App.RulesFile)
	if err != nil {
		return nil, err
	}

	log.Info().Str("file", cfg.App.RulesFile).Msg("loaded classification rules")

	return c, nil
}

func newTranscriber(ctx context.Context, cfg *config.Config) (transaction.Transcriber, error) {
	if !cfg.Speech.Enabled {
		return speech.Nop{}, nil
	}

	g, err := speech.NewGemini(ctx, speech.GeminiConfig{
		APIKey:  cfg.Speech.APIKey,
		Model:   cfg.Speech.Model,
		Timeout: cfg.Speech.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating transcriber: %w", err)
	}

	return g, nil
}

func (a *App) newRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger) (transaction.Repository, error) {
	var primary transaction.Repository

	switch cfg.Store.Driver {
	case config.StoreSQLite:
		s, err := sqlitestore.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}

		a.closers = append(a.closers, s)
		primary = s
	case config.StorePostgres:
		db, err := database.New(ctx, cfg.ConnectionString(), database.PoolFor(cfg.DB.MaxConns))
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}

		a.closers = append(a.closers, db)

		s := txStore.New(db)

		schemaCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := s.EnsureSchema(schemaCtx); err != nil {
			return nil, err
		}

		primary = s
	default:
		primary = csvstore.New(cfg.Store.CSVFile, log)
	}

	log.Info().Str("driver", cfg.Store.Driver).Msg("ledger store ready")

	if !cfg.Sheets.Enabled {
		return primary, nil
	}

	sheet, err := sheets.New(ctx, []byte(cfg.Sheets.CredentialsJSON), cfg.Sheets.SheetID, cfg.Sheets.Range, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to google sheets: %w", err)
	}

	log.Info().Str("sheet_id", cfg.Sheets.SheetID).Msg("mirroring records to google sheets")

	return mirror.New(log, primary, sheet), nil
}
