package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/dompetku/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/dompetku/internal/analytics"
	"github.com/MrJamesThe3rd/dompetku/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/dompetku/internal/budget/store"
	"github.com/MrJamesThe3rd/dompetku/internal/category"
	categoryStore "github.com/MrJamesThe3rd/dompetku/internal/category/store"
	"github.com/MrJamesThe3rd/dompetku/internal/config"
	"github.com/MrJamesThe3rd/dompetku/internal/database"
	"github.com/MrJamesThe3rd/dompetku/internal/export"
	"github.com/MrJamesThe3rd/dompetku/internal/importer"
	"github.com/MrJamesThe3rd/dompetku/internal/insight"
	"github.com/MrJamesThe3rd/dompetku/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/dompetku/internal/matching/store"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
	txStore "github.com/MrJamesThe3rd/dompetku/internal/transaction/store"
)

const connectTimeout = 10 * time.Second

type services struct {
	userID       string
	loc          *time.Location
	transactions *transaction.Service
	categories   *category.Service
	matching     *matching.Service
	analytics    *analytics.Service
	insights     *insight.Service
	budgets      *budget.Service
	importer     *importer.Service
	exporter     *export.Service
}

type menuItem struct {
	key   string
	label string
	open  func(s *services) view.View
}

var menu = []menuItem{
	{"1", "Summary", func(s *services) view.View { return view.NewSummaryModel(s.analytics, s.userID, s.loc) }},
	{"2", "Trend", func(s *services) view.View { return view.NewTrendModel(s.analytics, s.userID, s.loc) }},
	{"3", "Insights", func(s *services) view.View { return view.NewInsightsModel(s.insights, s.userID) }},
	{"4", "Quick Add", func(s *services) view.View { return view.NewQuickAddModel(s.transactions, s.matching, s.userID) }},
	{"5", "Budgets", func(s *services) view.View {
		return view.NewBudgetsModel(s.budgets, s.categories, s.userID, s.loc)
	}},
	{"6", "Transactions", func(s *services) view.View { return view.NewTransactionsModel(s.transactions, s.userID, s.loc) }},
	{"7", "Import CSV", func(s *services) view.View { return view.NewImportModel(s.importer, s.userID) }},
	{"8", "Export CSV", func(s *services) view.View { return view.NewExportModel(s.exporter, s.userID, s.loc) }},
}

type model struct {
	svc     *services
	current view.View // nil while the menu is shown
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == nil {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			for _, item := range menu {
				if msg.String() == item.key {
					m.current = item.open(m.svc)
					return m, m.current.Init()
				}
			}

			return m, nil
		}
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	if v, ok := next.(view.View); ok {
		m.current = v
	}

	return m, cmd
}

func (m model) View() string {
	if m.current != nil {
		return m.current.View()
	}

	s := "Dompetku\n\n"
	for _, item := range menu {
		s += fmt.Sprintf("%s. %s\n", item.key, item.label)
	}
	s += "\nq. Quit"

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func newServices(db *sql.DB, userID string, loc *time.Location) *services {
	catSvc := category.NewService(categoryStore.New(db))
	txSvc := transaction.NewService(txStore.New(db), transaction.WithCategoryVerifier(catSvc))
	matchSvc := matching.NewService(matchingStore.New(db), catSvc)

	return &services{
		userID:       userID,
		loc:          loc,
		transactions: txSvc,
		categories:   catSvc,
		matching:     matchSvc,
		analytics:    analytics.NewService(txSvc, catSvc),
		insights:     insight.NewService(txSvc),
		budgets:      budget.NewService(budgetStore.New(db), txSvc, catSvc),
		importer:     importer.NewService(importer.NewCSVParser(loc), txSvc, matchSvc),
		exporter:     export.NewService(txSvc),
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.TUI.UserID == "" {
		return errors.New("TUI_USER_ID is required")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	p := tea.NewProgram(model{svc: newServices(db, cfg.TUI.UserID, loc)}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("tui failed", "error", err)
		os.Exit(1)
	}
}
