package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompetku/internal/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		token string
		want  int64
	}{
		{"15k", 15_000},
		{"2jt", 2_000_000},
		{"7.5k", 7_500},
		{"3.5jt", 3_500_000},
		{"1m", 1_000_000},
		{"25000", 25_000},
		{"25,000", 25_000},
		{"1_500", 1_500},
		{"15K", 15_000},
		{"2JT", 2_000_000},
		{"12.4", 12},
		{"12.5", 13},
		{"0.0005k", 1},
		{"1,5jt", 15_000_000},
		{"1,500,000", 1_500_000},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := money.Parse(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, token := range []string{"abc", "", "k", "jt", "12x", "1.2.3k", "1.500.000"} {
		t.Run(token, func(t *testing.T) {
			_, err := money.Parse(token)
			assert.ErrorIs(t, err, money.ErrInvalidAmount)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "50.000", money.Format(50_000))
	assert.Equal(t, "1.250.000", money.Format(1_250_000))
	assert.Equal(t, "999", money.Format(999))
	assert.Equal(t, "Rp 5.000.000", money.FormatRupiah(5_000_000))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 80, money.Percent(800_000, 1_000_000))
	assert.Equal(t, 33, money.Percent(1, 3))
	assert.Equal(t, 67, money.Percent(2, 3))
	assert.Equal(t, 120, money.Percent(1_200_000, 1_000_000))
	assert.Equal(t, 0, money.Percent(10, 0))
}
