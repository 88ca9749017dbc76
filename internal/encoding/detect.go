// Package encoding decodes uploaded text files to UTF-8. Spreadsheet exports
// from Windows machines are often Windows-1252 or UTF-16.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

type bom struct {
	prefix []byte
	enc    xenc.Encoding // nil: strip the mark, the rest is UTF-8
}

var boms = []bom{
	{prefix: []byte{0xEF, 0xBB, 0xBF}},
	{prefix: []byte{0xFF, 0xFE}, enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{prefix: []byte{0xFE, 0xFF}, enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// charsets maps chardet results to decoders.
var charsets = map[string]xenc.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
	"UTF-16LE":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"UTF-16BE":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

var fallback xenc.Encoding = charmap.Windows1252

// NewUTF8Reader returns a reader yielding r's content as UTF-8. A byte order
// mark wins, then valid UTF-8 passes through, then chardet guesses, and
// anything else is read as Windows-1252.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	buf, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(buf, b.prefix) {
			continue
		}

		if b.enc == nil {
			_, _ = br.Discard(len(b.prefix))
			return br, nil
		}

		return transform.NewReader(br, b.enc.NewDecoder()), nil
	}

	if utf8.Valid(trimPartialRune(buf)) {
		return br, nil
	}

	return transform.NewReader(br, detect(buf).NewDecoder()), nil
}

func detect(buf []byte) xenc.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return fallback
	}

	if enc, ok := charsets[result.Charset]; ok {
		return enc
	}

	return fallback
}

// trimPartialRune drops a multi-byte sequence cut off at the end of the sniff
// window so it does not count as invalid UTF-8.
func trimPartialRune(buf []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.RuneStart(buf[len(buf)-i]) {
			if !utf8.FullRune(buf[len(buf)-i:]) {
				return buf[:len(buf)-i]
			}

			break
		}
	}

	return buf
}
