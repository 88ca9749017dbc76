package analytics

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/dompetku/internal/aggregate"
)

type TrendQuery struct {
	UserID string
	Start  time.Time
	End    time.Time
	Period aggregate.Period
}

type TrendPoint struct {
	Key     string
	Income  int64
	Expense int64
	Balance int64
}

type Trend struct {
	Period aggregate.Period
	Points []TrendPoint
}

// Trend returns one point per period step between Start and End inclusive.
// Every step is present even without activity. A reversed range yields no
// points.
func (s *Service) Trend(ctx context.Context, q TrendQuery) (*Trend, error) {
	if err := validUser(q.UserID); err != nil {
		return nil, err
	}

	if !q.Period.Valid() {
		return nil, ErrInvalidPeriod
	}

	if q.End.Before(q.Start) {
		return &Trend{Period: q.Period, Points: []TrendPoint{}}, nil
	}

	txs, err := s.txs.ListByPeriod(ctx, q.UserID, q.Start, q.End)
	if err != nil {
		return nil, err
	}

	buckets := aggregate.BucketByPeriod(txs, q.Period, q.Start)

	trend := &Trend{Period: q.Period}

	for _, start := range steps(q.Start, q.End, q.Period) {
		key := aggregate.BucketKey(start, q.Period)
		point := TrendPoint{Key: key}

		if b, ok := buckets[key]; ok {
			point.Income = b.Income
			point.Expense = b.Expense
			point.Balance = b.Balance()
		}

		trend.Points = append(trend.Points, point)
	}

	return trend, nil
}

// steps lists bucket starts from start's bucket through end's bucket.
func steps(start, end time.Time, p aggregate.Period) []time.Time {
	cursor := aggregate.BucketStart(start, p, start)
	last := aggregate.BucketStart(end, p, start)

	var out []time.Time

	for !cursor.After(last) {
		out = append(out, cursor)
		cursor = aggregate.Step(cursor, p)
	}

	return out
}
