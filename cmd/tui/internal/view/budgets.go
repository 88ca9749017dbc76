package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/budget"
	"github.com/MrJamesThe3rd/dompetku/internal/category"
	"github.com/MrJamesThe3rd/dompetku/internal/money"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

const deletedCategoryName = "(deleted category)"

var levelColors = map[budget.Level]lipgloss.Color{
	budget.LevelSafe:     lipgloss.Color("46"),
	budget.LevelWarning:  lipgloss.Color("214"),
	budget.LevelExceeded: lipgloss.Color("196"),
}

type budgetsState int

const (
	budgetsStateBrowse budgetsState = iota
	budgetsStateForm
)

// BudgetsModel shows this month's budget usage and lets the user set or
// remove budgets.
type BudgetsModel struct {
	CommonModel
	budgets    *budget.Service
	categories *category.Service
	userID     string
	loc        *time.Location

	state    budgetsState
	table    table.Model
	statuses []*budget.Status
	names    map[uuid.UUID]string
	expense  []*category.Category
	form     *huh.Form

	loading bool
	status  string
	err     error
}

func NewBudgetsModel(budgets *budget.Service, categories *category.Service, userID string, loc *time.Location) BudgetsModel {
	columns := []table.Column{
		{Title: "Category", Width: 22},
		{Title: "Budget", Width: 16},
		{Title: "Spent", Width: 16},
		{Title: "Remaining", Width: 16},
		{Title: "Used", Width: 6},
		{Title: "Level", Width: 9},
	}

	return BudgetsModel{
		budgets:    budgets,
		categories: categories,
		userID:     userID,
		loc:        loc,
		table:      newTable(columns, 10),
		loading:    true,
	}
}

func (m BudgetsModel) Title() string { return "Budgets" }

func (m BudgetsModel) ShortHelp() string {
	if m.state == budgetsStateForm {
		return "Enter: save | Esc: cancel"
	}

	return "n: set budget | d: delete | ↑/↓: navigate | Esc: back"
}

func (m BudgetsModel) Init() tea.Cmd {
	return m.load()
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case budgetsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.statuses = msg.statuses
			m.names = msg.names
			m.expense = msg.expense
			m.table.SetRows(BudgetRows(msg.statuses, msg.names))
		}
		return m, nil

	case budgetSavedMsg:
		m.err = msg.err
		m.status = msg.text
		if msg.err != nil {
			return m, nil
		}
		m.loading = true
		return m, m.load()
	}

	if m.state == budgetsStateForm {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			if len(m.expense) == 0 {
				m.err = fmt.Errorf("no expense categories to budget")
				return m, nil
			}
			m.form = newBudgetForm(m.expense)
			m.state = budgetsStateForm
			m.status = ""
			m.err = nil
			return m, m.form.Init()
		case "d":
			if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.statuses) {
				return m, m.remove(m.statuses[cursor].Budget)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BudgetsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = budgetsStateBrowse
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = budgetsStateBrowse
	return m, m.save(m.form.GetString("category"), m.form.GetString("amount"))
}

func newBudgetForm(cats []*category.Category) *huh.Form {
	options := make([]huh.Option[string], 0, len(cats))
	for _, c := range cats {
		options = append(options, huh.NewOption(c.Icon+" "+c.Name, c.ID.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...),
			huh.NewInput().
				Key("amount").
				Title("Monthly budget").
				Placeholder("1.5jt").
				Validate(func(s string) error {
					_, err := money.Parse(s)
					return err
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m BudgetsModel) View() string {
	header := headerStyle.Render("Budgets (this month)")

	if m.state == budgetsStateForm {
		return paddedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.form.View(), "", mutedStyle.Render(m.ShortHelp())))
	}

	parts := []string{header, ""}

	switch {
	case m.loading:
		parts = append(parts, "Loading...")
	case len(m.statuses) == 0:
		parts = append(parts, mutedStyle.Render("No budgets yet. Press n to set one."))
	default:
		parts = append(parts, m.table.View())
	}

	if m.err != nil {
		parts = append(parts, "", errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.status != "" {
		parts = append(parts, "", successStyle.Render(m.status))
	}

	parts = append(parts, "", mutedStyle.Render(m.ShortHelp()))

	return paddedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// BudgetRows renders one row per status. Budgets whose category no longer
// exists are still listed.
func BudgetRows(statuses []*budget.Status, names map[uuid.UUID]string) []table.Row {
	rows := make([]table.Row, 0, len(statuses))

	for _, s := range statuses {
		name, ok := names[s.Budget.CategoryID]
		if !ok {
			name = deletedCategoryName
		}

		rows = append(rows, table.Row{
			name,
			FormatAmount(s.Budget.Amount),
			FormatAmount(s.Spent),
			FormatAmount(s.Remaining),
			fmt.Sprintf("%d%%", s.Percentage),
			lipgloss.NewStyle().Foreground(levelColors[s.Level]).Render(string(s.Level)),
		})
	}

	return rows
}

type budgetsLoadedMsg struct {
	statuses []*budget.Status
	names    map[uuid.UUID]string
	expense  []*category.Category
	err      error
}

func (m BudgetsModel) load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		start, _ := DateRange(TimeframeThisMonth, time.Now().In(m.loc))
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

		statuses, err := m.budgets.ListStatuses(ctx, m.userID, start, end)
		if err != nil {
			return budgetsLoadedMsg{err: err}
		}

		cats, err := m.categories.List(ctx, m.userID)
		if err != nil {
			return budgetsLoadedMsg{err: err}
		}

		names := make(map[uuid.UUID]string, len(cats))
		var expense []*category.Category

		for _, c := range cats {
			names[c.ID] = c.Icon + " " + c.Name
			if c.Type == transaction.TypeExpense {
				expense = append(expense, c)
			}
		}

		return budgetsLoadedMsg{statuses: statuses, names: names, expense: expense}
	}
}

type budgetSavedMsg struct {
	text string
	err  error
}

func (m BudgetsModel) save(categoryID, amount string) tea.Cmd {
	return func() tea.Msg {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			return budgetSavedMsg{err: err}
		}

		value, err := money.Parse(amount)
		if err != nil {
			return budgetSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		b, err := m.budgets.Set(ctx, budget.SetParams{UserID: m.userID, CategoryID: id, Amount: value})
		if err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{text: "Budget set to " + FormatAmount(b.Amount)}
	}
}

func (m BudgetsModel) remove(b *budget.Budget) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.budgets.Delete(ctx, m.userID, b.ID); err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{text: "Budget removed"}
	}
}
