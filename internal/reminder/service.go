package reminder

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// overdueLookbackYears is how far back Upcoming looks for unpaid bills.
const overdueLookbackYears = 1

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=reminder
type Repository interface {
	CreateReminder(ctx context.Context, r *Reminder) error
	GetReminder(ctx context.Context, id uuid.UUID) (*Reminder, error)
	ListReminders(ctx context.Context, userID string) ([]*Reminder, error)
	// ListDueBetween returns active reminders with a due date in [from, to].
	ListDueBetween(ctx context.Context, userID string, from, to time.Time) ([]*Reminder, error)
	UpdateReminder(ctx context.Context, r *Reminder) error
	DeleteReminder(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService returns a Service that counts due days in loc. A nil loc means UTC.
func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}

	return &Service{repo: repo, loc: loc, now: time.Now}
}

type CreateParams struct {
	UserID       string
	Title        string
	Amount       int64
	CategoryID   *uuid.UUID
	Frequency    Frequency
	NextDueDate  time.Time
	ReminderDays int
	Notes        string
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrUserIDRequired
	}

	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}

	if p.Amount <= 0 {
		return ErrAmountMustBePositive
	}

	if !p.Frequency.Valid() {
		return ErrInvalidFrequency
	}

	if p.ReminderDays < 0 {
		return ErrNegativeReminderDays
	}

	if p.NextDueDate.IsZero() {
		return ErrDueDateRequired
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Reminder, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	r := &Reminder{
		UserID:       params.UserID,
		Title:        strings.TrimSpace(params.Title),
		Amount:       params.Amount,
		CategoryID:   params.CategoryID,
		Frequency:    params.Frequency,
		NextDueDate:  params.NextDueDate,
		ReminderDays: params.ReminderDays,
		IsActive:     true,
		Notes:        strings.TrimSpace(params.Notes),
		CreatedAt:    s.now(),
	}

	if err := s.repo.CreateReminder(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Reminder, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	return s.repo.ListReminders(ctx, userID)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	return int(ub.Sub(ua).Hours() / 24)
}

// Upcoming lists reminders due within the next days, plus those overdue for
// up to a year, earliest due date first.
func (s *Service) Upcoming(ctx context.Context, userID string, days int) ([]Upcoming, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	if days <= 0 {
		return nil, ErrInvalidDays
	}

	today := startOfDay(s.now().In(s.loc))
	end := today.AddDate(0, 0, days)
	past := today.AddDate(-overdueLookbackYears, 0, 0)

	reminders, err := s.repo.ListDueBetween(ctx, userID, past, end)
	if err != nil {
		return nil, err
	}

	out := make([]Upcoming, len(reminders))

	for i, r := range reminders {
		due := daysBetween(today, r.NextDueDate.In(today.Location()))
		out[i] = Upcoming{Reminder: r, DaysUntilDue: due, IsOverdue: due < 0}
	}

	slices.SortStableFunc(out, func(a, b Upcoming) int {
		return a.Reminder.NextDueDate.Compare(b.Reminder.NextDueDate)
	})

	return out, nil
}

// addMonths keeps the day of month, clamped to the last day of the target month.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()

	return first.AddDate(0, 0, min(t.Day(), lastDay)-1)
}

// MarkPaid moves the reminder to its next due date. Custom reminders have no
// schedule, so paying one deactivates it.
func (s *Service) MarkPaid(ctx context.Context, userID string, id uuid.UUID) (*Reminder, error) {
	r, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	switch r.Frequency {
	case FrequencyWeekly:
		r.NextDueDate = r.NextDueDate.AddDate(0, 0, 7)
	case FrequencyMonthly:
		r.NextDueDate = addMonths(r.NextDueDate, 1)
	case FrequencyYearly:
		r.NextDueDate = addMonths(r.NextDueDate, 12)
	default:
		r.IsActive = false
	}

	r.UpdatedAt = new(s.now())

	if err := s.repo.UpdateReminder(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	return s.repo.DeleteReminder(ctx, id)
}

func (s *Service) owned(ctx context.Context, userID string, id uuid.UUID) (*Reminder, error) {
	r, err := s.repo.GetReminder(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.UserID != userID {
		return nil, ErrUnauthorized
	}

	return r, nil
}
