package aggregate

import (
	"time"

	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}

	return false
}

const monthKeyLayout = "2006-01"

// Bucket is the income/expense total of one period step.
type Bucket struct {
	Key     string
	Income  int64
	Expense int64
}

func (b *Bucket) Balance() int64 {
	return b.Income - b.Expense
}

func (b *Bucket) Add(tx *transaction.Transaction) {
	switch tx.Type {
	case transaction.TypeIncome:
		b.Income += tx.Amount
	case transaction.TypeExpense:
		b.Expense += tx.Amount
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BucketStart returns the first instant of the bucket that contains t.
// Weekly buckets are seven-day windows counted from anchor; t is converted to
// anchor's location first.
func BucketStart(t time.Time, p Period, anchor time.Time) time.Time {
	t = t.In(anchor.Location())

	switch p {
	case PeriodMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case PeriodWeekly:
		origin := startOfDay(anchor)
		day := startOfDay(t)

		days := daysBetween(origin, day)
		weeks := days / 7

		if days < 0 && days%7 != 0 {
			weeks--
		}

		return origin.AddDate(0, 0, weeks*7)
	default:
		return startOfDay(t)
	}
}

// daysBetween counts calendar days from a to b, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	return int(ub.Sub(ua).Hours() / 24)
}

// BucketKey formats a bucket start: YYYY-MM for monthly, YYYY-MM-DD otherwise.
func BucketKey(start time.Time, p Period) string {
	if p == PeriodMonthly {
		return start.Format(monthKeyLayout)
	}

	return start.Format(time.DateOnly)
}

// Step advances a bucket start by one period.
func Step(start time.Time, p Period) time.Time {
	switch p {
	case PeriodMonthly:
		return start.AddDate(0, 1, 0)
	case PeriodWeekly:
		return start.AddDate(0, 0, 7)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// BucketByPeriod folds transactions into buckets keyed by BucketKey.
func BucketByPeriod(txs []*transaction.Transaction, p Period, anchor time.Time) map[string]*Bucket {
	buckets := make(map[string]*Bucket)

	for _, tx := range txs {
		key := BucketKey(BucketStart(tx.CreatedAt, p, anchor), p)

		b, ok := buckets[key]
		if !ok {
			b = &Bucket{Key: key}
			buckets[key] = b
		}

		b.Add(tx)
	}

	return buckets
}
