package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dompetku/internal/aggregate"
	"github.com/MrJamesThe3rd/dompetku/internal/analytics"
)

const barWidth = 20

var trendPeriods = []aggregate.Period{aggregate.PeriodMonthly, aggregate.PeriodWeekly, aggregate.PeriodDaily}

// TrendModel tabulates income and expense per period step.
type TrendModel struct {
	CommonModel
	analytics *analytics.Service
	userID    string
	loc       *time.Location

	periodIdx int
	table     table.Model
	loading   bool
	err       error
}

func NewTrendModel(svc *analytics.Service, userID string, loc *time.Location) TrendModel {
	columns := []table.Column{
		{Title: "Period", Width: 10},
		{Title: "Income", Width: 16},
		{Title: "Expense", Width: 16},
		{Title: "Balance", Width: 16},
		{Title: "Expense share", Width: barWidth + 2},
	}

	return TrendModel{
		analytics: svc,
		userID:    userID,
		loc:       loc,
		table:     newTable(columns, 12),
		loading:   true,
	}
}

func (m TrendModel) Title() string { return "Trend" }

func (m TrendModel) ShortHelp() string {
	return "p: cycle period | ↑/↓: scroll | Esc: back"
}

func (m TrendModel) Init() tea.Cmd {
	return m.loadTrend()
}

func (m TrendModel) period() aggregate.Period {
	return trendPeriods[m.periodIdx]
}

func (m TrendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trendLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.trend != nil {
			m.table.SetRows(trendRows(msg.trend))
			m.table.GotoBottom()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "p":
			m.periodIdx = (m.periodIdx + 1) % len(trendPeriods)
			m.loading = true
			return m, m.loadTrend()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TrendModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("Trend (%s)", m.period()))

	if m.loading {
		return paddedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", "Loading..."))
	}

	if m.err != nil {
		return paddedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", errorStyle.Render(fmt.Sprintf("Error: %v", m.err))))
	}

	return paddedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.table.View(), "", mutedStyle.Render(m.ShortHelp())))
}

// TrendWindow returns the range shown for p: six months, eight weeks or
// fourteen days up to now.
func TrendWindow(p aggregate.Period, now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var start time.Time

	switch p {
	case aggregate.PeriodDaily:
		start = today.AddDate(0, 0, -13)
	case aggregate.PeriodWeekly:
		start = today.AddDate(0, 0, -7*7)
	default:
		start = time.Date(today.Year(), today.Month()-5, 1, 0, 0, 0, 0, today.Location())
	}

	return endOfDay(start, today)
}

func trendRows(trend *analytics.Trend) []table.Row {
	var peak int64
	for _, p := range trend.Points {
		peak = max(peak, p.Expense)
	}

	rows := make([]table.Row, 0, len(trend.Points))
	for _, p := range trend.Points {
		rows = append(rows, table.Row{
			p.Key,
			FormatAmount(p.Income),
			FormatAmount(p.Expense),
			FormatAmount(p.Balance),
			bar(p.Expense, peak),
		})
	}

	return rows
}

func bar(value, peak int64) string {
	if peak <= 0 || value <= 0 {
		return ""
	}

	return strings.Repeat("█", max(1, int(value*barWidth/peak)))
}

type trendLoadedMsg struct {
	trend *analytics.Trend
	err   error
}

func (m TrendModel) loadTrend() tea.Cmd {
	period := m.period()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		start, end := TrendWindow(period, time.Now().In(m.loc))

		trend, err := m.analytics.Trend(ctx, analytics.TrendQuery{
			UserID: m.userID,
			Start:  start,
			End:    end,
			Period: period,
		})

		return trendLoadedMsg{trend: trend, err: err}
	}
}
