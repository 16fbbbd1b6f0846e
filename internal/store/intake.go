package store

import (
	"context"

	"github.com/ykvlv/hydration-bot/internal/domain"
)

// AddIntake appends a drink to the ledger.
func (r *SQLiteRepo) AddIntake(ctx context.Context, in domain.Intake) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO intake_records (user_id, volume_ml, effective_ml, drink_type, local_date, logged_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.UserID, in.VolumeML, in.EffectiveML, string(in.Drink), in.LocalDate, in.LoggedAt.UTC().Unix(),
	)
	return err
}

// EffectiveTotal sums effective ml logged by a user on a local date.
func (r *SQLiteRepo) EffectiveTotal(ctx context.Context, userID int64, localDate string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(effective_ml), 0)
		FROM intake_records
		WHERE user_id = ? AND local_date = ?`,
		userID, localDate,
	).Scan(&total)
	return total, err
}
