package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dompetku/internal/importer"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

// ImportModel loads a bank or spreadsheet CSV export into the user's
// transactions.
type ImportModel struct {
	CommonModel
	importService *importer.Service
	userID        string

	state        importState
	filePicker   filepicker.Model
	importedList list.Model

	status string
	err    error
}

func NewImportModel(svc *importer.Service, userID string) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".CSV", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: svc,
		userID:        userID,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "↑/↓: scroll | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateResult && m.err == nil {
			var cmd tea.Cmd
			m.importedList, cmd = m.importedList.Update(msg)

			return m, cmd
		}

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions.", len(msg.txs))

		items := make([]list.Item, len(msg.txs))
		for i, tx := range msg.txs {
			items[i] = importedItem{tx: tx}
		}

		m.importedList = list.New(items, importedDelegate{}, 80, 20)
		m.importedList.Title = "Imported"
		m.importedList.SetShowStatusBar(false)
		m.importedList.SetFilteringEnabled(false)
		m.importedList.SetShowHelp(false)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == importStateResult {
		m.state = importStateFilePick
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select CSV file to import:\n\n%s", m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(
		successStyle.Render(m.status) + "\n\n" + m.importedList.View() + "\n\n(Esc to import another file)",
	)
}

type importResultMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		txs, err := m.importService.Import(ctx, m.userID, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{txs: txs}
	}
}

type importedItem struct {
	tx *transaction.Transaction
}

func (i importedItem) Title() string       { return i.tx.Category }
func (i importedItem) Description() string { return i.tx.Note }
func (i importedItem) FilterValue() string { return i.tx.Category }

type importedDelegate struct{}

func (d importedDelegate) Height() int                             { return 1 }
func (d importedDelegate) Spacing() int                            { return 0 }
func (d importedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d importedDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(importedItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	sign := "-"
	if item.tx.Type == transaction.TypeIncome {
		sign = "+"
	}

	fmt.Fprintf(w, "%s%s  %s%s  %s  %s",
		cursor,
		FormatDate(item.tx.CreatedAt),
		sign,
		FormatAmount(item.tx.Amount),
		item.tx.Category,
		mutedStyle.Render(item.tx.Note),
	)
}
