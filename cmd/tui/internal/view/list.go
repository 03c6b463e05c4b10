package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type ListModel struct {
	CommonModel
	txService *transaction.Service

	table   table.Model
	records []transaction.Record

	// Period cycling
	options   []PeriodOption
	periodIdx int

	loading bool
	err     error
}

// Resize fits the table to the terminal.
func (m *ListModel) Resize(msg tea.WindowSizeMsg) {
	m.CommonModel.Resize(msg)
	m.table.SetHeight(m.BodyHeight(5))
}

func NewListModel(txSvc *transaction.Service) ListModel {
	columns := []table.Column{
		{Title: "Waktu", Width: 20},
		{Title: "Jumlah", Width: 16},
		{Title: "Kategori", Width: 20},
		{Title: "Keterangan", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		txService: txSvc,
		table:     t,
		options:   PeriodOptions(),
		loading:   true,
	}
}

func (m ListModel) Title() string { return "Riwayat" }

func (m ListModel) ShortHelp() string {
	return "Esc: back | p: period | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		m.err = msg.err
		m.records = msg.records
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.Resize(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "p":
			m.periodIdx = (m.periodIdx + 1) % len(m.options)
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Memuat catatan...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("[p] Periode: %s | %d catatan",
		activeStyle(m.options[m.periodIdx].String()), len(m.records))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	))
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// Newest first.
func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		rows = append(rows, table.Row{
			r.Timestamp,
			FormatAmount(r.Type, r.Amount),
			string(r.Category),
			r.Note,
		})
	}

	m.table.SetRows(rows)
}

type loadListMsg struct {
	records []transaction.Record
	err     error
}

func (m ListModel) loadCmd() tea.Cmd {
	period := m.options[m.periodIdx].Period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if period == nil {
			records, err := m.txService.List(ctx)
			return loadListMsg{records: records, err: err}
		}

		records, err := m.txService.ListPeriod(ctx, *period)

		return loadListMsg{records: records, err: err}
	}
}
