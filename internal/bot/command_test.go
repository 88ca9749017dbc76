package bot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompetku/internal/bot"
	"github.com/MrJamesThe3rd/dompetku/internal/money"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bot.Command
	}{
		{
			name: "Expense",
			text: "- makan 25000",
			want: bot.Command{Type: transaction.TypeExpense, Category: "makan", Amount: 25000},
		},
		{
			name: "Income",
			text: "+ gaji 5000000",
			want: bot.Command{Type: transaction.TypeIncome, Category: "gaji", Amount: 5_000_000},
		},
		{
			name: "NoMarkerDefaultsToExpense",
			text: "kopi 15k",
			want: bot.Command{Type: transaction.TypeExpense, Category: "kopi", Amount: 15_000},
		},
		{
			name: "MarkerWithoutSpace",
			text: "+bonus 2jt",
			want: bot.Command{Type: transaction.TypeIncome, Category: "bonus", Amount: 2_000_000},
		},
		{
			name: "TwoWordsSplitIntoCategoryAndNote",
			text: "- makan siang 30k",
			want: bot.Command{Type: transaction.TypeExpense, Category: "makan", Note: "siang", Amount: 30_000},
		},
		{
			name: "FourWords",
			text: "- belanja bulanan indomaret dekat 1.5jt",
			want: bot.Command{
				Type: transaction.TypeExpense, Category: "belanja bulanan", Note: "indomaret dekat", Amount: 1_500_000,
			},
		},
		{
			name: "ThreeWords",
			text: "- transport ojek kantor 20k",
			want: bot.Command{Type: transaction.TypeExpense, Category: "transport", Note: "ojek kantor", Amount: 20_000},
		},
		{
			name: "CommaIsGroupSeparator",
			text: "- laptop 1,5jt",
			want: bot.Command{Type: transaction.TypeExpense, Category: "laptop", Amount: 15_000_000},
		},
		{
			name: "DottedThousandsReadAsDecimal",
			text: "- makan 1.500.000",
			want: bot.Command{Type: transaction.TypeExpense, Category: "makan", Note: "1.", Amount: 500},
		},
		{
			name: "UpperCaseSuffix",
			text: "- bensin 50K",
			want: bot.Command{Type: transaction.TypeExpense, Category: "bensin", Amount: 50_000},
		},
		{
			name: "GroupSeparators",
			text: "+ freelance 1,250,000",
			want: bot.Command{Type: transaction.TypeIncome, Category: "freelance", Amount: 1_250_000},
		},
		{
			name: "MillionM",
			text: "+ gaji 5m",
			want: bot.Command{Type: transaction.TypeIncome, Category: "gaji", Amount: 5_000_000},
		},
		{
			name: "DigitsInsideCategory",
			text: "- pulsa 3 50k",
			want: bot.Command{Type: transaction.TypeExpense, Category: "pulsa", Note: "3", Amount: 50_000},
		},
		{
			name: "ExtraWhitespace",
			text: "   -   parkir    5k   ",
			want: bot.Command{Type: transaction.TypeExpense, Category: "parkir", Amount: 5_000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bot.ParseCommand(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseCommand_Invalid(t *testing.T) {
	for _, text := range []string{
		"invalid command",
		"",
		"- 50k",
		"+",
		"- makan",
		"50000",
	} {
		t.Run(text, func(t *testing.T) {
			got, err := bot.ParseCommand(text)
			assert.ErrorIs(t, err, bot.ErrInvalidCommandFormat)
			assert.Nil(t, got)
		})
	}
}

func TestParseCommand_MissingAmountIsFormatError(t *testing.T) {
	_, err := bot.ParseCommand("- makan abc")
	assert.ErrorIs(t, err, bot.ErrInvalidCommandFormat)
	assert.NotErrorIs(t, err, money.ErrInvalidAmount)
}
