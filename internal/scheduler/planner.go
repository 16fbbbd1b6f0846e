package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/hydration-bot/internal/domain"
)

// Planner turns a profile into a DailySchedule. Both the dispatcher and the
// rescheduler go through it so a plan built either way is the same.
type Planner struct {
	weather WeatherLookup
	goal    domain.GoalCalculator
	timeout time.Duration
	log     *zap.Logger
}

// NewPlanner creates a Planner. weatherTimeout bounds each lookup; zero means
// the caller's context alone.
func NewPlanner(weather WeatherLookup, weatherTimeout time.Duration, log *zap.Logger) *Planner {
	return &Planner{
		weather: weather,
		goal:    domain.SchedulingGoal,
		timeout: weatherTimeout,
		log:     log,
	}
}

// Plan builds the schedule of p for the window starting on localDate.
// A failed weather lookup is not an error: the goal is computed without bonus.
func (pl *Planner) Plan(ctx context.Context, p *domain.Profile, localDate string, now time.Time) (*domain.DailySchedule, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return pl.build(p, localDate, pl.temperature(ctx, p.City), now)
}

// Replan is Plan for a day that may already have a schedule. The weather
// snapshot of prev is reused while date, city and timezone are unchanged, so
// the goal of a day only moves with the profile.
func (pl *Planner) Replan(ctx context.Context, p *domain.Profile, localDate string, prev *domain.DailySchedule, now time.Time) (*domain.DailySchedule, error) {
	if prev == nil || prev.LocalDate != localDate || prev.City != p.City || prev.TZ != p.TZ {
		return pl.Plan(ctx, p, localDate, now)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return pl.build(p, localDate, prev.Temperature, now)
}

func (pl *Planner) build(p *domain.Profile, localDate string, temp *float64, now time.Time) (*domain.DailySchedule, error) {
	goal := pl.goal.Daily(domain.GoalInputFor(p, temp))
	s, err := domain.BuildSchedule(p.UserID, localDate, p.TZ, p.Window(), goal, temp, now)
	if err != nil {
		return nil, err
	}
	s.City = p.City
	return s, nil
}

func (pl *Planner) temperature(ctx context.Context, city string) *float64 {
	if city == "" || pl.weather == nil {
		return nil
	}
	if pl.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pl.timeout)
		defer cancel()
	}
	t, ok := pl.weather.CurrentTemperature(ctx, city)
	if !ok {
		pl.log.Debug("weather unavailable, no bonus", zap.String("city", city))
		return nil
	}
	return &t
}
