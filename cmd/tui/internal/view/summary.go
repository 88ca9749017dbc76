package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dompetku/internal/analytics"
)

type summaryState int

const (
	summaryStateTimeframe summaryState = iota
	summaryStateLoading
	summaryStateResult
)

// SummaryModel shows income and expense totals for a timeframe, broken down
// per category.
type SummaryModel struct {
	CommonModel
	analytics *analytics.Service
	userID    string

	state           summaryState
	timeframePicker TimeframePicker
	label           string

	table   table.Model
	summary *analytics.Summary
	err     error
}

func NewSummaryModel(svc *analytics.Service, userID string, loc *time.Location) SummaryModel {
	columns := []table.Column{
		{Title: "Type", Width: 8},
		{Title: "Category", Width: 24},
		{Title: "Amount", Width: 18},
		{Title: "Count", Width: 6},
		{Title: "Share", Width: 6},
	}

	return SummaryModel{
		analytics:       svc,
		userID:          userID,
		state:           summaryStateTimeframe,
		timeframePicker: NewTimeframePicker(TimeframeThisWeek, loc),
		table:           newTable(columns, 12),
	}
}

func (m SummaryModel) Title() string { return "Summary" }

func (m SummaryModel) ShortHelp() string {
	if m.state == summaryStateResult {
		return "↑/↓: scroll | r: change timeframe | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m SummaryModel) Init() tea.Cmd {
	return nil
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.label = msg.Label
		m.state = summaryStateLoading
		return m, m.loadSummary(msg.Start, msg.End)

	case summaryLoadedMsg:
		m.state = summaryStateResult
		m.err = msg.err
		m.summary = msg.summary
		if msg.summary != nil {
			m.table.SetRows(summaryRows(msg.summary))
			m.table.GotoTop()
		}
		return m, nil
	}

	switch m.state {
	case summaryStateTimeframe:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)
		return m, cmd

	case summaryStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "r":
				m.state = summaryStateTimeframe
				m.timeframePicker.Reset()
				return m, nil
			}
		}

		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m SummaryModel) View() string {
	switch m.state {
	case summaryStateTimeframe:
		return paddedStyle.Render(m.timeframePicker.View())
	case summaryStateLoading:
		return paddedStyle.Render("Loading summary...")
	}

	if m.err != nil {
		return paddedStyle.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	s := m.summary
	totals := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Summary: "+m.label),
		"",
		fmt.Sprintf("Income:  %s", FormatAmount(s.TotalIncome)),
		fmt.Sprintf("Expense: %s", FormatAmount(s.TotalExpense)),
		fmt.Sprintf("Balance: %s", FormatAmount(s.Balance)),
	)

	if len(s.IncomeByCategory)+len(s.ExpenseByCategory) == 0 {
		return paddedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, totals, "", mutedStyle.Render("No transactions in this period.")))
	}

	return paddedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, totals, "", m.table.View(), "", mutedStyle.Render(m.ShortHelp())))
}

// summaryRows lists expense categories first, each group already sorted by
// amount.
func summaryRows(s *analytics.Summary) []table.Row {
	rows := make([]table.Row, 0, len(s.ExpenseByCategory)+len(s.IncomeByCategory))

	for _, group := range [][]analytics.CategoryAnalytics{s.ExpenseByCategory, s.IncomeByCategory} {
		for _, c := range group {
			rows = append(rows, table.Row{
				string(c.Type),
				c.Icon + " " + c.Name,
				FormatAmount(c.TotalAmount),
				strconv.Itoa(c.TransactionCount),
				strconv.Itoa(c.Percentage) + "%",
			})
		}
	}

	return rows
}

type summaryLoadedMsg struct {
	summary *analytics.Summary
	err     error
}

func (m SummaryModel) loadSummary(start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.analytics.Categories(ctx, analytics.CategoryQuery{
			UserID: m.userID,
			From:   start,
			To:     end,
		})

		return summaryLoadedMsg{summary: summary, err: err}
	}
}
