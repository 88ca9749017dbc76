package importer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	dotThousands   = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)
	commaThousands = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+$`)
)

// parseAmount reads a rupiah amount written either way round:
// "50.000", "1.250.000,50", "50,000", "1,250,000.50" or "-25000".
// The result is rounded to whole rupiah and keeps its sign.
func parseAmount(s string) (int64, error) {
	clean := strings.ToLower(strings.TrimSpace(s))
	clean = strings.NewReplacer("rp", "", "idr", "", " ", "").Replace(clean)

	dot := strings.LastIndex(clean, ".")
	comma := strings.LastIndex(clean, ",")

	switch {
	case dot >= 0 && comma >= 0 && dot > comma:
		clean = strings.ReplaceAll(clean, ",", "")
	case dot >= 0 && comma >= 0:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case dotThousands.MatchString(clean):
		clean = strings.ReplaceAll(clean, ".", "")
	case commaThousands.MatchString(clean):
		clean = strings.ReplaceAll(clean, ",", "")
	case comma >= 0:
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Round(0).IntPart(), nil
}
