package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/hydration-bot/internal/domain"
	"github.com/ykvlv/hydration-bot/internal/store"
)

// Rescheduler rebuilds the current schedule when something that shapes it
// changes. Handlers call it synchronously after persisting the change.
type Rescheduler struct {
	profiles  store.ProfileStore
	schedules store.ScheduleStore
	planner   *Planner
	log       *zap.Logger
	metrics   *Metrics
	now       func() time.Time
}

func NewRescheduler(profiles store.ProfileStore, schedules store.ScheduleStore, planner *Planner, log *zap.Logger, metrics *Metrics) *Rescheduler {
	return &Rescheduler{
		profiles:  profiles,
		schedules: schedules,
		planner:   planner,
		log:       log,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Reschedule regenerates the full-day schedule of the window in effect now.
// Already delivered slots keep their sent state and the day's weather
// snapshot is reused, so calling it twice in a row changes nothing. Disabled users get their pending events canceled instead.
func (r *Rescheduler) Reschedule(ctx context.Context, userID int64) error {
	p, err := r.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !p.NotificationsEnabled {
		return r.cancel(ctx, p)
	}
	if !p.RegistrationComplete {
		return fmt.Errorf("user %d: %w", userID, domain.ErrProfileIncomplete)
	}

	now := r.now().UTC()
	local, _ := domain.Localize(now, p.TZ)
	date := domain.WindowDate(local, p.Window())

	prev, err := r.schedules.GetSchedule(ctx, userID, date)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	s, err := r.planner.Replan(ctx, p, date, prev, now)
	if err != nil {
		return err
	}
	if err := r.schedules.SaveSchedule(ctx, s); err != nil {
		return err
	}
	r.metrics.RecordScheduleGenerated(ctx, "reschedule")
	r.log.Info("schedule regenerated",
		zap.Int64("user_id", userID),
		zap.String("date", date),
		zap.Int("goal_ml", s.GoalML),
		zap.Strings("times", s.Times()),
	)
	return nil
}

// CancelFutureSchedule drops unsent events of the current window and later.
func (r *Rescheduler) CancelFutureSchedule(ctx context.Context, userID int64) error {
	p, err := r.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	return r.cancel(ctx, p)
}

func (r *Rescheduler) cancel(ctx context.Context, p *domain.Profile) error {
	local, _ := domain.Localize(r.now().UTC(), p.TZ)
	date := domain.WindowDate(local, p.Window())
	n, err := r.schedules.CancelUnsent(ctx, p.UserID, date)
	if err != nil {
		return err
	}
	r.log.Info("pending reminders canceled", zap.Int64("user_id", p.UserID), zap.Int("count", n))
	return nil
}

// OnIntakeLogged refreshes the schedule after a drink was recorded.
func (r *Rescheduler) OnIntakeLogged(ctx context.Context, userID int64) error {
	return r.Reschedule(ctx, userID)
}

// OnProfileChanged reschedules when any of fields affects the plan.
func (r *Rescheduler) OnProfileChanged(ctx context.Context, userID int64, fields ...domain.Field) error {
	if !domain.AffectsSchedule(fields...) {
		return nil
	}
	return r.Reschedule(ctx, userID)
}

// OnNotificationsToggled persists the flag, then reschedules or cancels.
func (r *Rescheduler) OnNotificationsToggled(ctx context.Context, userID int64, enabled bool) error {
	if err := r.profiles.SetNotificationsEnabled(ctx, userID, enabled); err != nil {
		return err
	}
	if !enabled {
		return r.CancelFutureSchedule(ctx, userID)
	}
	return r.Reschedule(ctx, userID)
}

// RescheduleAll refreshes every active user, e.g. at startup after a config
// change. Failures are logged per user.
func (r *Rescheduler) RescheduleAll(ctx context.Context) {
	users, err := r.profiles.ListActive(ctx)
	if err != nil {
		r.log.Error("ListActive failed", zap.Error(err))
		return
	}
	for _, p := range users {
		if err := r.Reschedule(ctx, p.UserID); err != nil {
			r.log.Warn("reschedule failed", zap.Error(err), zap.Int64("user_id", p.UserID))
		}
	}
}
