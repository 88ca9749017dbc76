package aggregate

import (
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompetku/internal/category"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

// Lookup resolves transactions to category records, by id first and by
// case-insensitive name for legacy transactions.
type Lookup struct {
	byID   map[uuid.UUID]*category.Category
	byName map[nameKey]*category.Category
}

type nameKey struct {
	typ  transaction.Type
	name string
}

func NewLookup(cats []*category.Category) *Lookup {
	l := &Lookup{
		byID:   make(map[uuid.UUID]*category.Category, len(cats)),
		byName: make(map[nameKey]*category.Category, len(cats)),
	}

	for _, c := range cats {
		l.byID[c.ID] = c

		k := nameKey{typ: c.Type, name: normalize(c.Name)}
		if _, taken := l.byName[k]; !taken {
			l.byName[k] = c
		}
	}

	return l
}

// Resolve returns the grouping key for tx and the matching category, if any.
// Transactions without a match are keyed by their lower-cased category text.
func (l *Lookup) Resolve(tx *transaction.Transaction) (string, *category.Category) {
	if l == nil {
		l = NewLookup(nil)
	}

	if tx.CategoryID != nil {
		if c, ok := l.byID[*tx.CategoryID]; ok {
			return c.ID.String(), c
		}

		return tx.CategoryID.String(), nil
	}

	name := normalize(tx.Category)

	if c, ok := l.byName[nameKey{typ: tx.Type, name: name}]; ok {
		return c.ID.String(), c
	}

	return name, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
