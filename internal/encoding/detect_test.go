package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/dompetku/internal/encoding"
)

const header = "Tanggal;Kategori;Catatan\n2024-03-01;Kafé;kopi susu\n"

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	assert.Equal(t, header, decode(t, []byte(header)))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	latin, err := charmap.Windows1252.NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)
	require.NotEqual(t, []byte(header), latin)

	assert.Equal(t, header, decode(t, latin))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, header...)
	assert.Equal(t, header, decode(t, input))
}

func TestNewUTF8Reader_UTF16(t *testing.T) {
	tests := []struct {
		name  string
		order unicode.Endianness
	}{
		{"LittleEndian", unicode.LittleEndian},
		{"BigEndian", unicode.BigEndian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := unicode.UTF16(tt.order, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
			require.NoError(t, err)

			assert.Equal(t, header, decode(t, encoded))
		})
	}
}

func TestNewUTF8Reader_RuneSplitAtSniffWindow(t *testing.T) {
	// 4095 ASCII bytes put the first byte of "é" at the end of the peeked window.
	input := strings.Repeat("a", 4095) + "é\n"
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Empty(t, decode(t, nil))
}
