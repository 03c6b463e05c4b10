package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/dompet/internal/app"
	"github.com/MrJamesThe3rd/dompet/internal/config"
	"github.com/MrJamesThe3rd/dompet/internal/discord"
	dompetHttp "github.com/MrJamesThe3rd/dompet/internal/http"
	exportHandler "github.com/MrJamesThe3rd/dompet/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/dompet/internal/http/importcsv"
	summaryHandler "github.com/MrJamesThe3rd/dompet/internal/http/summary"
	txHandler "github.com/MrJamesThe3rd/dompet/internal/http/transaction"
	"github.com/MrJamesThe3rd/dompet/internal/logger"
	"github.com/MrJamesThe3rd/dompet/internal/scheduler"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format).With().Str("app", cfg.App.Name).Logger()

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	var (
		transactionH = txHandler.NewHandler(a.Transactions)
		summaryH     = summaryHandler.NewHandler(a.Transactions)
		exportH      = exportHandler.NewHandler(a.Export)
		importH      = importHandler.NewHandler(a.Import, a.Transactions)
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           dompetHttp.New(log, transactionH, summaryH, exportH, importH),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + cfg.Speech.Timeout,
	}

	if cfg.Discord.Token != "" {
		bot, err := discord.NewBot(cfg.Discord.Token, cfg.Discord.ChannelID, a.Transactions, log)
		if err != nil {
			return err
		}

		if err := bot.Start(); err != nil {
			return err
		}
		defer bot.Stop()

		log.Info().Str("channel", cfg.Discord.ChannelID).Msg("discord bot connected")

		if cfg.Discord.Digest != "" {
			digest := scheduler.NewDigest(a.Clock.Location(), a.Transactions, bot, log)
			if err := digest.Schedule(cfg.Discord.Digest); err != nil {
				return err
			}

			digest.Start()
			defer digest.Stop(context.Background())

			log.Info().Str("schedule", cfg.Discord.Digest).Msg("daily digest enabled")
		}
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
