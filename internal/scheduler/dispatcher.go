package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ykvlv/hydration-bot/internal/domain"
	"github.com/ykvlv/hydration-bot/internal/store"
)

// Options tune the dispatcher loop.
type Options struct {
	Interval      time.Duration // tick period
	Tolerance     time.Duration // due window half-width
	Workers       int           // per-user fan-out
	SendTimeout   time.Duration
	RetentionDays int
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = time.Minute
	}
	if o.Tolerance <= 0 {
		o.Tolerance = 3 * time.Minute
	}
	if o.Workers <= 0 {
		o.Workers = 8
	}
	if o.SendTimeout <= 0 {
		o.SendTimeout = 10 * time.Second
	}
	if o.RetentionDays <= 0 {
		o.RetentionDays = 14
	}
	return o
}

// Report summarizes one tick.
type Report struct {
	Generated  int
	Sent       int
	Suppressed int
	Failed     int
}

type tickCounters struct {
	generated, sent, suppressed, failed atomic.Int64
}

func (c *tickCounters) report() Report {
	return Report{
		Generated:  int(c.generated.Load()),
		Sent:       int(c.sent.Load()),
		Suppressed: int(c.suppressed.Load()),
		Failed:     int(c.failed.Load()),
	}
}

// Dispatcher periodically generates daily schedules and delivers due reminders.
type Dispatcher struct {
	repo    store.Repo
	planner *Planner
	sink    Notifier
	log     *zap.Logger
	metrics *Metrics
	opts    Options
	now     func() time.Time

	mu sync.Mutex // one tick at a time
}

// New creates a Dispatcher.
func New(repo store.Repo, planner *Planner, sink Notifier, log *zap.Logger, metrics *Metrics, opts Options) *Dispatcher {
	return &Dispatcher{
		repo:    repo,
		planner: planner,
		sink:    sink,
		log:     log,
		metrics: metrics,
		opts:    opts.withDefaults(),
		now:     time.Now,
	}
}

// Run ticks until ctx is canceled. Old schedules are purged hourly.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.opts.Interval)
	defer ticker.Stop()
	purge := time.NewTicker(time.Hour)
	defer purge.Stop()

	d.Tick(ctx, d.now().UTC())
	for {
		select {
		case <-ctx.Done():
			d.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			d.Tick(ctx, d.now().UTC())
		case <-purge.C:
			d.Purge(ctx, d.now().UTC())
		}
	}
}

// Tick runs one cycle at now: generate missing schedules, then deliver due
// events. Overlapping calls are serialized.
func (d *Dispatcher) Tick(ctx context.Context, now time.Time) Report {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	log := d.log.With(zap.String("tick_id", uuid.NewString()))
	var c tickCounters

	users, err := d.repo.ListActive(ctx)
	if err != nil {
		log.Error("ListActive failed", zap.Error(err))
	} else {
		d.ensureSchedules(ctx, log, users, now, &c)
	}

	due, err := d.repo.DueUnsent(ctx, now, d.opts.Tolerance)
	if err != nil {
		log.Error("DueUnsent failed", zap.Error(err))
	} else {
		d.deliverAll(ctx, log, due, now, &c)
	}

	rep := c.report()
	d.metrics.RecordTickDuration(ctx, time.Since(start))
	if rep != (Report{}) {
		log.Info("tick done",
			zap.Int("generated", rep.Generated),
			zap.Int("sent", rep.Sent),
			zap.Int("suppressed", rep.Suppressed),
			zap.Int("failed", rep.Failed),
			zap.Duration("took", time.Since(start)),
		)
	}
	return rep
}

// Purge drops schedules older than the retention period.
func (d *Dispatcher) Purge(ctx context.Context, now time.Time) {
	cutoff := now.AddDate(0, 0, -d.opts.RetentionDays).Format(domain.DateLayout)
	n, err := d.repo.PurgeBefore(ctx, cutoff)
	if err != nil {
		d.log.Error("purge failed", zap.Error(err))
		return
	}
	if n > 0 {
		d.log.Info("old schedules purged", zap.Int("count", n), zap.String("before", cutoff))
	}
}

func (d *Dispatcher) ensureSchedules(ctx context.Context, log *zap.Logger, users []domain.Profile, now time.Time, c *tickCounters) {
	var g errgroup.Group
	g.SetLimit(d.opts.Workers)
	for i := range users {
		p := &users[i]
		g.Go(func() error {
			generated, err := guard(func() (bool, error) { return d.ensureSchedule(ctx, p, now) })
			switch {
			case err != nil:
				c.failed.Add(1)
				d.metrics.RecordFailure(ctx, "generate")
				log.Error("schedule generation failed", zap.Error(err), zap.Int64("user_id", p.UserID))
			case generated:
				c.generated.Add(1)
				d.metrics.RecordScheduleGenerated(ctx, "window_start")
			}
			return nil
		})
	}
	_ = g.Wait()
}

// ensureSchedule creates today's schedule once the window has started and
// none exists yet. A late start still generates; past events then age out.
func (d *Dispatcher) ensureSchedule(ctx context.Context, p *domain.Profile, now time.Time) (bool, error) {
	local, today := domain.Localize(now, p.TZ)
	w := p.Window()
	date := domain.WindowDate(local, w)
	if date == today && domain.MinuteOfDay(local) < w.StartM {
		return false, nil
	}

	_, err := d.repo.GetSchedule(ctx, p.UserID, date)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	s, err := d.planner.Plan(ctx, p, date, now)
	if err != nil {
		return false, err
	}
	if err := d.repo.SaveSchedule(ctx, s); err != nil {
		return false, err
	}
	d.log.Info("schedule generated",
		zap.Int64("user_id", p.UserID),
		zap.String("date", date),
		zap.Int("goal_ml", s.GoalML),
		zap.Strings("times", s.Times()),
	)
	return true, nil
}

func (d *Dispatcher) deliverAll(ctx context.Context, log *zap.Logger, due []domain.DueEvent, now time.Time, c *tickCounters) {
	if len(due) == 0 {
		return
	}
	byUser := make(map[int64][]domain.DueEvent)
	var order []int64
	for _, ev := range due {
		if _, ok := byUser[ev.UserID]; !ok {
			order = append(order, ev.UserID)
		}
		byUser[ev.UserID] = append(byUser[ev.UserID], ev)
	}

	var g errgroup.Group
	g.SetLimit(d.opts.Workers)
	for _, userID := range order {
		events := byUser[userID]
		g.Go(func() error {
			// One user's events go out in due order.
			for _, ev := range events {
				if ctx.Err() != nil {
					return nil
				}
				_, err := guard(func() (bool, error) { return true, d.deliver(ctx, log, ev, now, c) })
				if err != nil {
					c.failed.Add(1)
					d.metrics.RecordFailure(ctx, "deliver")
					log.Error("delivery failed",
						zap.Error(err),
						zap.Int64("user_id", ev.UserID),
						zap.Int64("event_id", ev.ID),
						zap.String("local_time", ev.LocalTime),
					)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, log *zap.Logger, ev domain.DueEvent, now time.Time, c *tickCounters) error {
	var text string
	switch ev.Kind {
	case domain.KindMorning:
		text = MorningText(ev.GoalML, ev.Glasses, ev.Temperature, ev.City)
	case domain.KindEvening:
		total, err := d.repo.EffectiveTotal(ctx, ev.UserID, ev.LocalDate)
		if err != nil {
			return fmt.Errorf("effective total: %w", err)
		}
		text = EveningText(total, ev.GoalML)
	default:
		if ev.Mode == domain.ModeFocus {
			c.suppressed.Add(1)
			d.metrics.RecordSuppressed(ctx, "focus")
			return nil
		}
		total, err := d.repo.EffectiveTotal(ctx, ev.UserID, ev.LocalDate)
		if err != nil {
			return fmt.Errorf("effective total: %w", err)
		}
		remaining := ev.GoalML - total
		if remaining <= 0 {
			c.suppressed.Add(1)
			d.metrics.RecordSuppressed(ctx, "goal_met")
			return nil
		}
		text = ReminderText(remaining)
	}

	// Claim before sending. A reschedule running meanwhile carries the claim
	// over to its replacement row, so the slot cannot go out twice.
	ok, err := d.repo.MarkSent(ctx, ev.ID, now)
	if err != nil {
		return fmt.Errorf("claim: %w", err)
	}
	if !ok {
		log.Debug("event already claimed", zap.Int64("event_id", ev.ID))
		return nil
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.opts.SendTimeout)
	err = d.sink.Send(sendCtx, ev.UserID, text)
	cancel()
	if err != nil {
		if _, uerr := d.repo.UnmarkSent(context.WithoutCancel(ctx), ev); uerr != nil {
			log.Error("release claim failed", zap.Error(uerr), zap.Int64("event_id", ev.ID))
		}
		return fmt.Errorf("send: %w", err)
	}
	c.sent.Add(1)
	d.metrics.RecordSent(ctx, ev.Kind.String())
	log.Debug("reminder sent",
		zap.Int64("user_id", ev.UserID),
		zap.String("kind", ev.Kind.String()),
		zap.String("local_time", ev.LocalTime),
	)
	return nil
}

// guard turns a panic in fn into an error so one user cannot stop the tick.
func guard(fn func() (bool, error)) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
