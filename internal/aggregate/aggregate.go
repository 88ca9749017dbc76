// Package aggregate holds the pure reducers shared by analytics, budgets and
// insights. Nothing here performs I/O.
package aggregate

import (
	"strings"

	"github.com/MrJamesThe3rd/dompetku/internal/category"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

type Totals struct {
	Income  int64
	Expense int64
}

func (t Totals) Balance() int64 {
	return t.Income - t.Expense
}

func SumByType(txs []*transaction.Transaction) Totals {
	var t Totals

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			t.Income += tx.Amount
		case transaction.TypeExpense:
			t.Expense += tx.Amount
		}
	}

	return t
}

func FilterByType(txs []*transaction.Transaction, typ transaction.Type) []*transaction.Transaction {
	var out []*transaction.Transaction

	for _, tx := range txs {
		if tx.Type == typ {
			out = append(out, tx)
		}
	}

	return out
}

// Group is the running total for one category.
type Group struct {
	Key   string
	Name  string
	Icon  string
	Color string
	Type  transaction.Type
	Total int64
	Count int
}

// GroupByCategory folds transactions into per-category groups. Groups are
// returned in the order their category was first seen.
func GroupByCategory(txs []*transaction.Transaction, lookup *Lookup) []*Group {
	var groups []*Group

	index := make(map[string]*Group)

	for _, tx := range txs {
		key, cat := lookup.Resolve(tx)

		g, ok := index[key]
		if !ok {
			g = newGroup(key, tx, cat)
			index[key] = g
			groups = append(groups, g)
		}

		g.Total += tx.Amount
		g.Count++
	}

	return groups
}

func newGroup(key string, tx *transaction.Transaction, cat *category.Category) *Group {
	if cat != nil {
		return &Group{Key: key, Name: cat.Name, Icon: cat.Icon, Color: cat.Color, Type: cat.Type}
	}

	name := strings.TrimSpace(tx.Category)
	if name == "" {
		name = key
	}

	return &Group{
		Key:   key,
		Name:  name,
		Icon:  category.FallbackIcon,
		Color: category.FallbackColor,
		Type:  tx.Type,
	}
}
