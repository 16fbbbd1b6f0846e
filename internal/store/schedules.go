package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ykvlv/hydration-bot/internal/domain"
)

// GetSchedule returns the schedule of a user for a local date, events in due order.
func (r *SQLiteRepo) GetSchedule(ctx context.Context, userID int64, localDate string) (*domain.DailySchedule, error) {
	var (
		s           domain.DailySchedule
		generatedAt int64
		temp        sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, local_date, generated_at, goal_ml, temperature, city, tz
		FROM daily_schedules
		WHERE user_id = ? AND local_date = ?`,
		userID, localDate,
	).Scan(&s.ID, &s.UserID, &s.LocalDate, &generatedAt, &s.GoalML, &temp, &s.City, &s.TZ)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.GeneratedAt = fromUnix(generatedAt)
	s.Temperature = fromNullFloat64(temp)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, schedule_id, local_time, due_at, kind, sent, sent_at
		FROM reminder_events
		WHERE schedule_id = ?
		ORDER BY due_at ASC, id ASC`,
		s.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e       domain.ReminderEvent
			dueAt   int64
			kind    int
			sentInt int
			sentAt  sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.ScheduleID, &e.LocalTime, &dueAt, &kind, &sentInt, &sentAt); err != nil {
			return nil, err
		}
		e.DueAt = fromUnix(dueAt)
		e.Kind = domain.ReminderKind(kind)
		e.Sent = sentInt != 0
		e.SentAt = fromNullInt64(sentAt)
		s.Events = append(s.Events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

type deliveredKey struct {
	localTime string
	kind      domain.ReminderKind
}

// SaveSchedule replaces the schedule for (user, date) in one transaction.
// Events start unsent, except those matching an already delivered event of
// the replaced schedule by minute and kind: they keep that delivery.
func (r *SQLiteRepo) SaveSchedule(ctx context.Context, s *domain.DailySchedule) error {
	if s == nil {
		return errors.New("nil schedule")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	delivered, err := deliveredEvents(ctx, tx, s.UserID, s.LocalDate)
	if err != nil {
		return fmt.Errorf("load delivered events: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM reminder_events
		WHERE schedule_id IN (SELECT id FROM daily_schedules WHERE user_id = ? AND local_date = ?)`,
		s.UserID, s.LocalDate,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM daily_schedules WHERE user_id = ? AND local_date = ?`,
		s.UserID, s.LocalDate,
	); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO daily_schedules (user_id, local_date, generated_at, goal_ml, temperature, city, tz)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.UserID, s.LocalDate, s.GeneratedAt.UTC().Unix(), s.GoalML, toNullFloat64(s.Temperature), s.City, s.TZ,
	)
	if err != nil {
		return err
	}
	scheduleID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reminder_events (schedule_id, local_time, due_at, kind, sent, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range s.Events {
		e := &s.Events[i]
		e.ScheduleID = scheduleID
		e.Sent, e.SentAt = false, nil
		key := deliveredKey{e.LocalTime, e.Kind}
		if at := delivered[key]; len(at) > 0 {
			e.Sent, e.SentAt = true, at[0]
			delivered[key] = at[1:]
		}
		res, err := stmt.ExecContext(ctx, scheduleID, e.LocalTime, e.DueAt.UTC().Unix(), int(e.Kind), boolToInt(e.Sent), toNullInt64(e.SentAt))
		if err != nil {
			return err
		}
		if e.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.ID = scheduleID
	return nil
}

func deliveredEvents(ctx context.Context, tx *sql.Tx, userID int64, localDate string) (map[deliveredKey][]*time.Time, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT e.local_time, e.kind, e.sent_at
		FROM reminder_events e
		JOIN daily_schedules s ON s.id = e.schedule_id
		WHERE s.user_id = ? AND s.local_date = ? AND e.sent = 1
		ORDER BY e.due_at ASC, e.id ASC`,
		userID, localDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[deliveredKey][]*time.Time)
	for rows.Next() {
		var (
			k      deliveredKey
			kind   int
			sentAt sql.NullInt64
		)
		if err := rows.Scan(&k.localTime, &kind, &sentAt); err != nil {
			return nil, err
		}
		k.kind = domain.ReminderKind(kind)
		out[k] = append(out[k], fromNullInt64(sentAt))
	}
	return out, rows.Err()
}

// DueUnsent returns unsent events due within the tolerance window around now,
// ordered by user and due time.
func (r *SQLiteRepo) DueUnsent(ctx context.Context, now time.Time, tolerance time.Duration) ([]domain.DueEvent, error) {
	from := now.Add(-tolerance).UTC().Unix()
	to := now.Add(tolerance).UTC().Unix()

	rows, err := r.db.QueryContext(ctx, `
		SELECT e.id, e.schedule_id, e.local_time, e.due_at, e.kind,
		       s.user_id, s.local_date, s.goal_ml, s.temperature,
		       s.city, u.tz, u.activity_mode
		FROM reminder_events e
		JOIN daily_schedules s ON s.id = e.schedule_id
		JOIN users u ON u.user_id = s.user_id
		WHERE e.sent = 0
		  AND e.due_at BETWEEN ? AND ?
		  AND u.notifications_enabled = 1
		ORDER BY s.user_id ASC, e.due_at ASC, e.id ASC`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.DueEvent
	for rows.Next() {
		var (
			d     domain.DueEvent
			dueAt int64
			kind  int
			temp  sql.NullFloat64
			mode  string
		)
		if err := rows.Scan(
			&d.ID, &d.ScheduleID, &d.LocalTime, &dueAt, &kind,
			&d.UserID, &d.LocalDate, &d.GoalML, &temp,
			&d.City, &d.TZ, &mode,
		); err != nil {
			return nil, err
		}
		d.DueAt = fromUnix(dueAt)
		d.Kind = domain.ReminderKind(kind)
		d.Temperature = fromNullFloat64(temp)
		d.Mode = domain.ActivityMode(mode)
		d.Glasses = domain.GlassCount(d.GoalML)
		res = append(res, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// MarkSent sets sent=1 only if the event is still unsent.
func (r *SQLiteRepo) MarkSent(ctx context.Context, eventID int64, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminder_events
		SET sent = 1, sent_at = ?
		WHERE id = ? AND sent = 0`,
		at.UTC().Unix(), eventID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// UnmarkSent flips a claimed event back to unsent, by ID first and by slot
// when the row was replaced. At most one row is released.
func (r *SQLiteRepo) UnmarkSent(ctx context.Context, ev domain.DueEvent) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminder_events SET sent = 0, sent_at = NULL
		WHERE id = ? AND sent = 1`,
		ev.ID,
	)
	if err != nil {
		return false, err
	}
	if n, err := res.RowsAffected(); err != nil || n == 1 {
		return n == 1, err
	}

	res, err = r.db.ExecContext(ctx, `
		UPDATE reminder_events SET sent = 0, sent_at = NULL
		WHERE id = (
		    SELECT e.id
		    FROM reminder_events e
		    JOIN daily_schedules s ON s.id = e.schedule_id
		    WHERE s.user_id = ? AND s.local_date = ?
		      AND e.local_time = ? AND e.kind = ? AND e.sent = 1
		    ORDER BY e.id DESC
		    LIMIT 1
		)`,
		ev.UserID, ev.LocalDate, ev.LocalTime, int(ev.Kind),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// CancelUnsent deletes unsent events of the user's schedules from fromDate on.
func (r *SQLiteRepo) CancelUnsent(ctx context.Context, userID int64, fromDate string) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM reminder_events
		WHERE sent = 0
		  AND schedule_id IN (
		      SELECT id FROM daily_schedules WHERE user_id = ? AND local_date >= ?
		  )`,
		userID, fromDate,
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// PurgeBefore removes schedules (and their events) dated before localDate.
func (r *SQLiteRepo) PurgeBefore(ctx context.Context, localDate string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM reminder_events
		WHERE schedule_id IN (SELECT id FROM daily_schedules WHERE local_date < ?)`,
		localDate,
	); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM daily_schedules WHERE local_date < ?`, localDate)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), tx.Commit()
}
