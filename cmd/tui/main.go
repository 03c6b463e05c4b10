package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/dompet/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/dompet/internal/app"
	"github.com/MrJamesThe3rd/dompet/internal/config"
	"github.com/MrJamesThe3rd/dompet/internal/export"
	"github.com/MrJamesThe3rd/dompet/internal/logger"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type model struct {
	txService     *transaction.Service
	exportService *export.Service

	currentView View
	size        tea.WindowSizeMsg

	captureView view.CaptureModel
	listView    view.ListModel
	summaryView view.SummaryModel
	exportView  view.ExportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewCapture View = 1
	ViewList    View = 2
	ViewSummary View = 3
	ViewExport  View = 4
)

func newModel(txSvc *transaction.Service, expSvc *export.Service) model {
	return model{
		txService:     txSvc,
		exportService: expSvc,
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCapture
				m.captureView = view.NewCaptureModel(m.txService)
				m.captureView.Resize(m.size)

				return m, m.captureView.Init()
			case "2":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.txService)
				m.listView.Resize(m.size)

				return m, m.listView.Init()
			case "3":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.txService)
				m.summaryView.Resize(m.size)

				return m, m.summaryView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)
				m.exportView.Resize(m.size)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewCapture:
		var newModel tea.Model
		newModel, cmd = m.captureView.Update(msg)
		m.captureView = newModel.(view.CaptureModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Dompet\n\n" +
				"1. Catat transaksi\n" +
				"2. Riwayat\n" +
				"3. Ringkasan\n" +
				"4. Ekspor ke Excel\n\n" +
				"q. Keluar",
		)
	case ViewCapture:
		return m.captureView.View()
	case ViewList:
		return m.listView.View()
	case ViewSummary:
		return m.summaryView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	// Logs go to TUI_LOG_FILE or nowhere.
	var logOut io.Writer = io.Discard

	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()

		logOut = f
	}

	log := logger.NewWithWriter(logOut).Level(logger.ParseLevel(cfg.Log.Level))

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to start")
		fmt.Fprintln(os.Stderr, "failed to start:", err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(newModel(a.Transactions, a.Export))
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run TUI")
		fmt.Fprintln(os.Stderr, "failed to run TUI:", err)
	}
}
