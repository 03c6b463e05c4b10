package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dompet/internal/report"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// Form values live behind a pointer so they survive the model being copied.
type captureInput struct {
	text    string
	confirm bool
}

type captureState int

const (
	captureStateInput captureState = iota
	captureStateSaving
	captureStateResult
)

// CaptureModel records one sentence at a time and previews the parse while
// the user types.
type CaptureModel struct {
	CommonModel
	txService *transaction.Service

	state captureState
	form  *huh.Form
	input *captureInput

	result string
	err    error
}

func NewCaptureModel(txSvc *transaction.Service) CaptureModel {
	m := CaptureModel{txService: txSvc}
	m.form = m.buildForm()

	return m
}

func (m CaptureModel) Title() string { return "Catat" }

func (m CaptureModel) ShortHelp() string {
	if m.state == captureStateResult {
		return "Enter: record another | Esc: back"
	}

	return "Enter: confirm | Esc: back"
}

func (m CaptureModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *CaptureModel) buildForm() *huh.Form {
	m.input = &captureInput{confirm: true}
	in := m.input

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("text").
				Title("Transaksi").
				Placeholder("beli kopi 25 ribu").
				Value(&in.text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("kalimat tidak boleh kosong")
					}

					return nil
				}),
			huh.NewNote().
				Title("Pratinjau").
				DescriptionFunc(func() string {
					return m.previewText(in.text)
				}, &in.text),
			huh.NewConfirm().
				Key("confirm").
				Title("Simpan?").
				Affirmative("Ya").
				Negative("Batal").
				Value(&in.confirm),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m CaptureModel) previewText(text string) string {
	if strings.TrimSpace(text) == "" {
		return "-"
	}

	d := m.txService.Preview(text)

	amount := "jumlah tidak ditemukan"
	if d.Found {
		amount = report.Rupiah(d.Amount)
	}

	return fmt.Sprintf("%s • %s • %s", d.Type.Label(), amount, d.Category)
}

func (m CaptureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(captureResultMsg); ok {
		m.state = captureStateResult
		m.err = result.err
		m.result = result.body

		return m, nil
	}

	switch m.state {
	case captureStateInput:
		return m.updateInput(msg)
	case captureStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m CaptureModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.input.confirm {
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	m.state = captureStateSaving

	return m, m.saveCmd(m.input.text)
}

func (m CaptureModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		return m, Back
	case tea.KeyEnter:
		m.state = captureStateInput
		m.err = nil
		m.result = ""
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	return m, nil
}

func (m CaptureModel) View() string {
	switch m.state {
	case captureStateSaving:
		return lipgloss.NewStyle().Padding(1).Render("Menyimpan...")
	case captureStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.result),
			)
		}

		return lipgloss.NewStyle().Padding(1).Render(m.result)
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

type captureResultMsg struct {
	body string
	err  error
}

func (m CaptureModel) saveCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rec, err := m.txService.Record(ctx, text)

		switch {
		case errors.Is(err, transaction.ErrAmountNotFound):
			return captureResultMsg{body: report.NotFound(""), err: err}
		case err != nil:
			return captureResultMsg{body: fmt.Sprintf("Error: %v", err), err: err}
		}

		return captureResultMsg{body: report.Saved(rec)}
	}
}
