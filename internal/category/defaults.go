package category

import "github.com/MrJamesThe3rd/dompetku/internal/transaction"

type preset struct {
	name  string
	icon  string
	color string
	typ   transaction.Type
}

var defaults = []preset{
	{"Food & Dining", "🍔", "#FF5733", transaction.TypeExpense},
	{"Transportation", "🚗", "#2196F3", transaction.TypeExpense},
	{"Shopping", "🛍️", "#E91E63", transaction.TypeExpense},
	{"Entertainment", "🎬", "#9C27B0", transaction.TypeExpense},
	{"Healthcare", "⚕️", "#00BCD4", transaction.TypeExpense},
	{"Bills & Utilities", "📝", "#FF9800", transaction.TypeExpense},
	{"Education", "📚", "#3F51B5", transaction.TypeExpense},
	{"Others", FallbackIcon, FallbackColor, transaction.TypeExpense},

	{"Salary", "💰", "#4CAF50", transaction.TypeIncome},
	{"Freelance", "💻", "#8BC34A", transaction.TypeIncome},
	{"Investment", "📈", "#009688", transaction.TypeIncome},
	{"Gift", "🎁", "#CDDC39", transaction.TypeIncome},
	{"Others", FallbackIcon, FallbackColor, transaction.TypeIncome},
}

// Defaults returns fresh default categories for userID.
func Defaults(userID string) []*Category {
	cats := make([]*Category, len(defaults))
	for i, p := range defaults {
		cats[i] = &Category{
			UserID:    userID,
			Name:      p.name,
			Icon:      p.icon,
			Color:     p.color,
			Type:      p.typ,
			IsDefault: true,
		}
	}

	return cats
}
