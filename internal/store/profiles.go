package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ykvlv/hydration-bot/internal/domain"
)

const profileColumns = `
	user_id, created_at, updated_at, weight_kg, gender, activity_level,
	activity_mode, city, tz, window_start_m, window_end_m,
	notifications_enabled, registration_complete`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var (
		p          domain.Profile
		createdAt  int64
		updatedAt  int64
		gender     string
		activity   string
		mode       string
		enabledInt int
		regInt     int
	)
	if err := row.Scan(
		&p.UserID, &createdAt, &updatedAt, &p.WeightKg, &gender, &activity,
		&mode, &p.City, &p.TZ, &p.WindowStartM, &p.WindowEndM,
		&enabledInt, &regInt,
	); err != nil {
		return nil, err
	}
	p.Gender = domain.Gender(gender)
	p.Activity = domain.ActivityLevel(activity)
	p.Mode = domain.ActivityMode(mode)
	p.NotificationsEnabled = enabledInt != 0
	p.RegistrationComplete = regInt != 0
	p.CreatedAt = fromUnix(createdAt)
	p.UpdatedAt = fromUnix(updatedAt)
	return &p, nil
}

// UpsertProfile inserts or updates a user's profile.
// If the user exists, fields are updated; otherwise, a new row is inserted.
func (r *SQLiteRepo) UpsertProfile(ctx context.Context, p *domain.Profile) error {
	if p == nil {
		return errors.New("nil profile")
	}

	now := time.Now().UTC().Unix()
	created := p.CreatedAt.UTC().Unix()
	if p.CreatedAt.IsZero() {
		created = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			updated_at            = excluded.updated_at,
			weight_kg             = excluded.weight_kg,
			gender                = excluded.gender,
			activity_level        = excluded.activity_level,
			activity_mode         = excluded.activity_mode,
			city                  = excluded.city,
			tz                    = excluded.tz,
			window_start_m        = excluded.window_start_m,
			window_end_m          = excluded.window_end_m,
			notifications_enabled = excluded.notifications_enabled,
			registration_complete = excluded.registration_complete`,
		p.UserID, created, now, p.WeightKg, string(p.Gender), string(p.Activity),
		string(p.Mode), p.City, p.TZ, p.WindowStartM, p.WindowEndM,
		boolToInt(p.NotificationsEnabled), boolToInt(p.RegistrationComplete),
	)
	return err
}

// GetProfile returns a user's profile or ErrNotFound.
func (r *SQLiteRepo) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM users WHERE user_id = ?`, userID)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// ListActive returns enabled, fully registered profiles ordered by user id.
func (r *SQLiteRepo) ListActive(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM users
		WHERE notifications_enabled = 1
		  AND registration_complete = 1
		ORDER BY user_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// SetNotificationsEnabled toggles the notifications flag for a user.
func (r *SQLiteRepo) SetNotificationsEnabled(ctx context.Context, userID int64, enabled bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET notifications_enabled = ?, updated_at = ?
		WHERE user_id = ?`,
		boolToInt(enabled), time.Now().UTC().Unix(), userID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
