package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

// typeFilters is the cycle order of the type filter; nil shows both types.
var typeFilters = []*transaction.Type{nil, new(transaction.TypeExpense), new(transaction.TypeIncome)}

type TransactionsModel struct {
	CommonModel
	txService *transaction.Service
	userID    string
	loc       *time.Location

	table     table.Model
	txs       []*transaction.Transaction
	search    textinput.Model
	searching bool
	typeIdx   int

	status string
	err    error
}

func NewTransactionsModel(svc *transaction.Service, userID string, loc *time.Location) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 16},
		{Title: "Category", Width: 20},
		{Title: "Note", Width: 30},
	}

	si := textinput.New()
	si.Placeholder = "category or note"
	si.Prompt = "Search: "
	si.CharLimit = 100

	return TransactionsModel{
		txService: svc,
		userID:    userID,
		loc:       loc,
		table:     newTable(columns, 15),
		search:    si,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	if m.searching {
		return "Enter: apply | Esc: cancel"
	}

	return "/: search | t: type | x: delete | Esc: back"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.load()
}

func (m TransactionsModel) typeLabel() string {
	if t := typeFilters[m.typeIdx]; t != nil {
		return string(*t)
	}

	return "all"
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case transactionsLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.txs = msg.txs
			m.table.SetRows(TransactionRows(msg.txs))
		}
		return m, nil

	case transactionDeletedMsg:
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.status = "Transaction deleted"
		return m, m.load()

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "/":
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		case "t":
			m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
			return m, m.load()
		case "x":
			if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.txs) {
				return m, m.remove(m.txs[cursor])
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TransactionsModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, m.load()
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m, m.load()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m TransactionsModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("Transactions this month (type: %s)", m.typeLabel()))
	parts := []string{header, "", m.search.View(), ""}

	if len(m.txs) == 0 {
		parts = append(parts, mutedStyle.Render("No transactions found."))
	} else {
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

func TransactionRows(txs []*transaction.Transaction) []table.Row {
	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, table.Row{
			FormatDate(tx.CreatedAt),
			string(tx.Type),
			FormatAmount(tx.Amount),
			tx.Category,
			tx.Note,
		})
	}

	return rows
}

type transactionsLoadedMsg struct {
	txs []*transaction.Transaction
	err error
}

type transactionDeletedMsg struct {
	err error
}

func (m TransactionsModel) load() tea.Cmd {
	filter := transaction.SearchFilter{
		UserID: m.userID,
		Query:  m.search.Value(),
		Type:   typeFilters[m.typeIdx],
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		from, to := DateRange(TimeframeThisMonth, time.Now().In(m.loc))
		filter.DateFrom = &from
		filter.DateTo = &to

		txs, err := m.txService.Search(ctx, filter)
		return transactionsLoadedMsg{txs: txs, err: err}
	}
}

func (m TransactionsModel) remove(tx *transaction.Transaction) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return transactionDeletedMsg{err: m.txService.Delete(ctx, m.userID, tx.ID)}
	}
}
