package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dompet/internal/report"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// SummaryModel shows the totals of every period side by side.
type SummaryModel struct {
	CommonModel
	txService *transaction.Service

	summaries []transaction.Summary
	loading   bool
	err       error
}

func NewSummaryModel(txSvc *transaction.Service) SummaryModel {
	return SummaryModel{txService: txSvc, loading: true}
}

func (m SummaryModel) Title() string { return "Ringkasan" }

func (m SummaryModel) ShortHelp() string {
	return "Esc: back | r: refresh"
}

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSummaryMsg:
		m.loading = false
		m.err = msg.err
		m.summaries = msg.summaries

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Menghitung...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	box := lipgloss.NewStyle().
		Padding(1, 2).
		MarginRight(1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))

	boxes := make([]string, 0, len(m.summaries))
	for _, s := range m.summaries {
		boxes = append(boxes, box.Render(strings.TrimSpace(report.Summary(s))))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
}

type loadSummaryMsg struct {
	summaries []transaction.Summary
	err       error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		records, err := m.txService.List(ctx)
		if err != nil {
			return loadSummaryMsg{err: err}
		}

		now := m.txService.Now()

		summaries := make([]transaction.Summary, 0, len(transaction.Periods()))
		for _, p := range transaction.Periods() {
			summaries = append(summaries, transaction.Summarize(p, now, records))
		}

		return loadSummaryMsg{summaries: summaries}
	}
}
