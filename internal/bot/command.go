package bot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MrJamesThe3rd/dompetku/internal/apperr"
	"github.com/MrJamesThe3rd/dompetku/internal/money"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

var ErrInvalidCommandFormat = apperr.Validation("invalid command format. expected: [+/-] category [note] amount")

// amountPattern matches the trailing amount token, e.g. "50k", "1,500,000" or "2.5jt".
var amountPattern = regexp.MustCompile(`(?i)(\d[\d,_]*(?:\.\d+)?(?:k|jt|m)?)\s*$`)

// Command is a transaction typed in chat, e.g. "- makan siang 25k".
type Command struct {
	Type     transaction.Type
	Category string
	Amount   int64
	Note     string
}

// ParseCommand reads "[+|-] category [note] amount". A leading "+" marks
// income; anything else is an expense.
func ParseCommand(text string) (*Command, error) {
	content := strings.TrimSpace(text)
	cmd := &Command{Type: transaction.TypeExpense}

	switch {
	case strings.HasPrefix(content, "+"):
		cmd.Type = transaction.TypeIncome
		content = strings.TrimSpace(content[1:])
	case strings.HasPrefix(content, "-"):
		content = strings.TrimSpace(content[1:])
	}

	loc := amountPattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return nil, ErrInvalidCommandFormat
	}

	words := strings.Fields(content[:loc[0]])
	if len(words) == 0 {
		return nil, ErrInvalidCommandFormat
	}

	amount, err := money.Parse(content[loc[2]:loc[3]])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCommandFormat, err)
	}

	cmd.Amount = amount

	// With several words the first half names the category and the rest is
	// the note.
	split := max(1, len(words)/2)
	cmd.Category = strings.Join(words[:split], " ")

	if len(words) > 1 {
		cmd.Note = strings.Join(words[split:], " ")
	}

	return cmd, nil
}
