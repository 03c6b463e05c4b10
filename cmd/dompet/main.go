package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/dompet/internal/app"
	"github.com/MrJamesThe3rd/dompet/internal/config"
	"github.com/MrJamesThe3rd/dompet/internal/logger"
	"github.com/MrJamesThe3rd/dompet/internal/report"
	"github.com/MrJamesThe3rd/dompet/internal/speech"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dompet",
	Short: "Record income and expenses from plain Indonesian sentences",
	Long: `Dompet records transactions written the way you would say them,
e.g. "beli kopi 25 ribu" or "gaji lima juta", and summarizes the ledger.`,
	SilenceUsage: true,
}

var (
	periodFlag string
	outFlag    string
)

func init() {
	riwayatCmd.Flags().StringVarP(&periodFlag, "periode", "p", "", "harian, mingguan or bulanan")
	eksporCmd.Flags().StringVarP(&periodFlag, "periode", "p", "", "harian, mingguan or bulanan")
	eksporCmd.Flags().StringVarP(&outFlag, "out", "o", ".", "output directory")

	rootCmd.AddCommand(catatCmd, cekCmd, suaraCmd, ringkasanCmd, riwayatCmd, eksporCmd, imporCmd)
}

var catatCmd = &cobra.Command{
	Use:   "catat <kalimat>",
	Short: "Record a transaction",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			rec, err := a.Transactions.Record(ctx, strings.Join(args, " "))
			if errors.Is(err, transaction.ErrAmountNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), report.NotFound(""))
				return err
			}

			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Saved(rec))

			return nil
		})
	},
}

var cekCmd = &cobra.Command{
	Use:   "cek <kalimat>",
	Short: "Show how a sentence would be recorded without saving it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App) error {
			draft := a.Transactions.Preview(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), formatDraft(draft))

			return nil
		})
	},
}

var suaraCmd = &cobra.Command{
	Use:   "suara <file>",
	Short: "Transcribe a voice note and record it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		audio, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading audio: %w", err)
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			rec, transcript, err := a.Transactions.RecordVoice(ctx, audio, speech.DetectMIME(audio))

			switch {
			case errors.Is(err, transaction.ErrAmountNotFound), errors.Is(err, transaction.ErrEmptyText):
				fmt.Fprintln(cmd.OutOrStdout(), report.NotFound(transcript))
				return err
			case err != nil:
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "🎙️ %q\n%s\n", transcript, report.Saved(rec))

			return nil
		})
	},
}

var ringkasanCmd = &cobra.Command{
	Use:       "ringkasan [harian|mingguan|bulanan]",
	Short:     "Summarize income, expense and balance",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"harian", "mingguan", "bulanan"},
	RunE: func(cmd *cobra.Command, args []string) error {
		period := transaction.PeriodDaily
		if len(args) == 1 {
			p, err := transaction.ParsePeriod(args[0])
			if err != nil {
				return err
			}

			period = p
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			s, err := a.Transactions.Summarize(ctx, period)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Summary(s))

			return nil
		})
	},
}

var riwayatCmd = &cobra.Command{
	Use:   "riwayat",
	Short: "List recorded transactions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		period, err := parsePeriodFlag()
		if err != nil {
			return err
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			var records []transaction.Record

			if period != nil {
				records, err = a.Transactions.ListPeriod(ctx, *period)
			} else {
				records, err = a.Transactions.List(ctx)
			}

			if err != nil {
				return err
			}

			for _, r := range records {
				fmt.Fprintln(cmd.OutOrStdout(), formatRecord(r))
			}

			return nil
		})
	},
}

var eksporCmd = &cobra.Command{
	Use:   "ekspor",
	Short: "Export the ledger to an xlsx workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		period, err := parsePeriodFlag()
		if err != nil {
			return err
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			path, err := a.Export.ExportFile(ctx, period, outFlag)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		})
	},
}

var imporCmd = &cobra.Command{
	Use:   "impor <file>",
	Short: "Import records from a dompet ledger, exported workbook or bank mutation CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			records, err := a.Import.Import(f)
			if err != nil {
				return err
			}

			result, err := a.Transactions.Import(ctx, records)
			fmt.Fprintf(cmd.OutOrStdout(), "%d diimpor, %d duplikat dilewati\n", len(result.Imported), len(result.Duplicates))

			return err
		})
	},
}

func parsePeriodFlag() (*transaction.Period, error) {
	if periodFlag == "" {
		return nil, nil
	}

	p, err := transaction.ParsePeriod(periodFlag)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(cmd.Context(), a)
}

func formatDraft(d transaction.Draft) string {
	amount := "tidak ditemukan"
	if d.Found {
		amount = report.Rupiah(d.Amount)
	}

	return fmt.Sprintf("Jenis: %s\nJumlah: %s\nKategori: %s", d.Type.Label(), amount, d.Category)
}

func formatRecord(r transaction.Record) string {
	sign := "-"
	if r.Type == transaction.TypeIncome {
		sign = "+"
	}

	return fmt.Sprintf("%s  %s%-12s  %-18s  %s", r.Timestamp, sign, report.Rupiah(r.Amount), r.Category, r.Note)
}
