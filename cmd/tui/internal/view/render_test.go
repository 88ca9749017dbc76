package view_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompetku/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/dompetku/internal/budget"
	"github.com/MrJamesThe3rd/dompetku/internal/insight"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "Rp 150.000", view.FormatAmount(150000))
}

func TestBudgetRows(t *testing.T) {
	food := uuid.New()

	statuses := []*budget.Status{
		{
			Budget:     &budget.Budget{CategoryID: food, Amount: 1000000},
			Spent:      850000,
			Remaining:  150000,
			Percentage: 85,
			Level:      budget.LevelWarning,
		},
		{
			Budget:    &budget.Budget{CategoryID: uuid.New(), Amount: 50000},
			Remaining: 50000,
			Level:     budget.LevelSafe,
		},
	}

	rows := view.BudgetRows(statuses, map[uuid.UUID]string{food: "🍔 Makanan"})
	require.Len(t, rows, 2)

	assert.Equal(t, "🍔 Makanan", rows[0][0])
	assert.Equal(t, "Rp 1.000.000", rows[0][1])
	assert.Equal(t, "Rp 850.000", rows[0][2])
	assert.Equal(t, "Rp 150.000", rows[0][3])
	assert.Equal(t, "85%", rows[0][4])
	assert.Contains(t, rows[0][5], "warning")

	assert.Equal(t, "(deleted category)", rows[1][0])
	assert.Equal(t, "0%", rows[1][4])
}

func TestTransactionRows(t *testing.T) {
	txs := []*transaction.Transaction{
		{
			Type:      transaction.TypeExpense,
			Amount:    25000,
			Category:  "makan",
			Note:      "siang",
			CreatedAt: time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC),
		},
	}

	rows := view.TransactionRows(txs)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"2024-03-14", "expense", "Rp 25.000", "makan", "siang"}, []string(rows[0]))
}

func TestRenderInsights(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Contains(t, view.RenderInsights(&insight.FinancialInsight{}), "Not enough data")
		assert.Contains(t, view.RenderInsights(nil), "Not enough data")
	})

	t.Run("FindingsAndRecommendations", func(t *testing.T) {
		out := view.RenderInsights(&insight.FinancialInsight{
			Insights: []insight.Insight{
				{Title: "Spending up", Description: "You spent more than last month", Severity: insight.SeverityWarning},
			},
			Recommendations: []insight.Recommendation{
				{Title: "Cut back", Description: "Food is your top category", Action: "Cook at home", PotentialSavings: 200000},
			},
		})

		assert.Contains(t, out, "Spending up")
		assert.Contains(t, out, "You spent more than last month")
		assert.Contains(t, out, "Recommendations")
		assert.Contains(t, out, "Cook at home")
		assert.Contains(t, out, "Rp 200.000")
	})
}
