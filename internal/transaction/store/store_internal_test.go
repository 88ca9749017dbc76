package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want string
	}{
		{name: "Plain", q: "makan", want: `%makan%`},
		{name: "Percent", q: "100%", want: `%100\%%`},
		{name: "Underscore", q: "gaji_bonus", want: `%gaji\_bonus%`},
		{name: "Backslash", q: `a\b`, want: `%a\\b%`},
		{name: "EscapedOnce", q: `\%`, want: `%\\\%%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.q))
		})
	}
}
