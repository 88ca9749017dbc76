package recurring

import "time"

func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

func (s *Service) SetMaxCatchUp(n int) {
	s.maxCatchUp = n
}

func (w *Worker) Interval() time.Duration {
	return w.interval
}
