package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/dompet/internal/report"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// PeriodOption is one entry of the period picker. A nil Period means every
// record.
type PeriodOption struct {
	Period *transaction.Period
}

func (o PeriodOption) String() string {
	if o.Period == nil {
		return "semua"
	}

	return report.PeriodTitle(*o.Period)
}

// PeriodOptions lists "all" followed by every summary period.
func PeriodOptions() []PeriodOption {
	opts := []PeriodOption{{}}
	for _, p := range transaction.Periods() {
		opts = append(opts, PeriodOption{Period: new(p)})
	}

	return opts
}

// PeriodSelectedMsg is emitted when the user confirms a period.
type PeriodSelectedMsg struct {
	Period *transaction.Period
}

// PeriodPicker is a reusable up/down selector over PeriodOptions.
type PeriodPicker struct {
	options  []PeriodOption
	selected int
}

func NewPeriodPicker() PeriodPicker {
	return PeriodPicker{options: PeriodOptions()}
}

func (m PeriodPicker) Init() tea.Cmd {
	return nil
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < len(m.options)-1 {
			m.selected++
		}
	case tea.KeyEnter:
		period := m.options[m.selected].Period
		return m, func() tea.Msg {
			return PeriodSelectedMsg{Period: period}
		}
	}

	return m, nil
}

func (m PeriodPicker) View() string {
	s := "Pilih periode:\n\n"
	for i, o := range m.options {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, o)
	}

	return s + "\n(Enter to select, Esc to back)"
}

// Selected returns the highlighted option.
func (m PeriodPicker) Selected() PeriodOption {
	return m.options[m.selected]
}

func (m *PeriodPicker) Reset() {
	m.selected = 0
}
