package store

import (
	"context"
	"errors"
	"time"

	"github.com/ykvlv/hydration-bot/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ProfileStore persists user profiles.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, p *domain.Profile) error
	// ListActive returns profiles with notifications enabled and registration complete.
	ListActive(ctx context.Context) ([]domain.Profile, error)
	SetNotificationsEnabled(ctx context.Context, userID int64, enabled bool) error
}

// IntakeLedger records drinks and sums effective volume per local date.
type IntakeLedger interface {
	AddIntake(ctx context.Context, in domain.Intake) error
	EffectiveTotal(ctx context.Context, userID int64, localDate string) (int, error)
}

// ScheduleStore persists one schedule per (user, local date) and its events.
type ScheduleStore interface {
	GetSchedule(ctx context.Context, userID int64, localDate string) (*domain.DailySchedule, error)
	// SaveSchedule replaces any schedule for the same (user, date) and fills in IDs.
	SaveSchedule(ctx context.Context, s *domain.DailySchedule) error
	// DueUnsent lists unsent events due within [now-tolerance, now+tolerance]
	// for users with notifications enabled.
	DueUnsent(ctx context.Context, now time.Time, tolerance time.Duration) ([]domain.DueEvent, error)
	// MarkSent flips sent 0->1; false means the event was already sent or is gone.
	MarkSent(ctx context.Context, eventID int64, at time.Time) (bool, error)
	// UnmarkSent releases a claimed event after a failed delivery. A reschedule
	// may have replaced the row meanwhile; then the carried-over slot with the
	// same (user, date, minute, kind) is released instead.
	UnmarkSent(ctx context.Context, ev domain.DueEvent) (bool, error)
	// CancelUnsent drops unsent events of schedules dated fromDate or later.
	CancelUnsent(ctx context.Context, userID int64, fromDate string) (int, error)
	// PurgeBefore deletes schedules dated strictly before localDate.
	PurgeBefore(ctx context.Context, localDate string) (int, error)
}

// Repo bundles all storage operations.
type Repo interface {
	ProfileStore
	IntakeLedger
	ScheduleStore
	Ping(ctx context.Context) error
	Close() error
}
