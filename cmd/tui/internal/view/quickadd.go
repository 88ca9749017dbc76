package view

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dompetku/internal/bot"
	"github.com/MrJamesThe3rd/dompetku/internal/matching"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

// QuickAddModel records transactions typed in chat syntax, e.g.
// "- makan siang 25k" or "+ gaji 5jt".
type QuickAddModel struct {
	CommonModel
	txService *transaction.Service
	matcher   *matching.Service
	userID    string

	form   *huh.Form
	saving bool
	status string
	err    error
}

func NewQuickAddModel(txSvc *transaction.Service, matcher *matching.Service, userID string) QuickAddModel {
	return QuickAddModel{txService: txSvc, matcher: matcher, userID: userID, form: newQuickAddForm()}
}

func (m QuickAddModel) Title() string { return "Quick Add" }

func (m QuickAddModel) ShortHelp() string {
	return "Enter: save | Esc: back"
}

func (m QuickAddModel) Init() tea.Cmd {
	return m.form.Init()
}

func newQuickAddForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("command").
				Title("Transaction").
				Description("[+/-] category [note] amount").
				Placeholder("- makan siang 25k").
				Validate(func(s string) error {
					_, err := bot.ParseCommand(s)
					return err
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m QuickAddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	case quickAddResultMsg:
		m.saving = false
		m.err = msg.err
		m.status = msg.text
		m.form = newQuickAddForm()
		return m, m.form.Init()
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.saving = true
	return m, m.save(m.form.GetString("command"))
}

func (m QuickAddModel) View() string {
	parts := []string{headerStyle.Render("Quick Add"), "", m.form.View()}

	switch {
	case m.saving:
		parts = append(parts, "", "Saving...")
	case m.err != nil:
		parts = append(parts, "", errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.status != "":
		parts = append(parts, "", successStyle.Render(m.status))
	}

	parts = append(parts, "", mutedStyle.Render(m.ShortHelp()))

	return paddedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

type quickAddResultMsg struct {
	text string
	err  error
}

func (m QuickAddModel) save(input string) tea.Cmd {
	return func() tea.Msg {
		cmd, err := bot.ParseCommand(input)
		if err != nil {
			return quickAddResultMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		params := transaction.CreateParams{
			UserID:   m.userID,
			Type:     cmd.Type,
			Amount:   cmd.Amount,
			Category: cmd.Category,
			Note:     cmd.Note,
		}

		cat, err := m.matcher.Match(ctx, m.userID, cmd.Category, cmd.Type)
		if err != nil {
			slog.Warn("failed to match category", "user_id", m.userID, "category", cmd.Category, "error", err)
		} else if cat != nil {
			params.CategoryID = &cat.ID
		}

		tx, err := m.txService.Create(ctx, params)
		if err != nil {
			return quickAddResultMsg{err: err}
		}

		return quickAddResultMsg{text: fmt.Sprintf("Saved %s %s: %s", tx.Type, tx.Category, FormatAmount(tx.Amount))}
	}
}
