package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dompetku/internal/insight"
)

var insightPeriods = []insight.Period{insight.PeriodCurrentMonth, insight.PeriodLast3Months, insight.PeriodLast6Months}

var severityColors = map[insight.Severity]lipgloss.Color{
	insight.SeverityInfo:     lipgloss.Color("39"),
	insight.SeverityWarning:  lipgloss.Color("214"),
	insight.SeverityCritical: lipgloss.Color("196"),
}

type InsightsModel struct {
	CommonModel
	insights *insight.Service
	userID   string

	periodIdx int
	result    *insight.FinancialInsight
	loading   bool
	err       error
}

func NewInsightsModel(svc *insight.Service, userID string) InsightsModel {
	return InsightsModel{insights: svc, userID: userID, loading: true}
}

func (m InsightsModel) Title() string { return "Insights" }

func (m InsightsModel) ShortHelp() string {
	return "p: cycle period | Esc: back"
}

func (m InsightsModel) Init() tea.Cmd {
	return m.load()
}

func (m InsightsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case insightsLoadedMsg:
		m.loading = false
		m.result = msg.result
		m.err = msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "p":
			m.periodIdx = (m.periodIdx + 1) % len(insightPeriods)
			m.loading = true
			return m, m.load()
		}
	}

	return m, nil
}

func (m InsightsModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("Insights (%s)", insightPeriods[m.periodIdx]))

	var body string
	switch {
	case m.loading:
		body = "Generating insights..."
	case m.err != nil:
		body = errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	default:
		body = RenderInsights(m.result)
	}

	return paddedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", mutedStyle.Render(m.ShortHelp())))
}

// RenderInsights lists findings followed by recommendations.
func RenderInsights(fi *insight.FinancialInsight) string {
	if fi == nil || len(fi.Insights)+len(fi.Recommendations) == 0 {
		return mutedStyle.Render("Not enough data for insights yet.")
	}

	var b strings.Builder

	for _, in := range fi.Insights {
		style := lipgloss.NewStyle().Bold(true).Foreground(severityColors[in.Severity])
		b.WriteString(style.Render("• " + in.Title))
		b.WriteString("\n  " + in.Description + "\n")
	}

	if len(fi.Recommendations) > 0 {
		b.WriteString("\n" + headerStyle.Render("Recommendations") + "\n")
	}

	for _, r := range fi.Recommendations {
		b.WriteString("• " + r.Title + "\n  " + r.Description + "\n")
		if r.Action != "" {
			b.WriteString("  → " + r.Action + "\n")
		}
		if r.PotentialSavings > 0 {
			b.WriteString("  Potential savings: " + FormatAmount(r.PotentialSavings) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

type insightsLoadedMsg struct {
	result *insight.FinancialInsight
	err    error
}

func (m InsightsModel) load() tea.Cmd {
	period := insightPeriods[m.periodIdx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.insights.Generate(ctx, m.userID, period)
		return insightsLoadedMsg{result: result, err: err}
	}
}
