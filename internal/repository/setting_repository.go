package repository

import (
	"context"

	"github.com/iliyamo/cinema-maintenance/internal/model"
)

// SettingRepo stores key/value settings.  Keys are unique.
type SettingRepo struct {
	db DBTX
}

func NewSettingRepo(db DBTX) *SettingRepo { return &SettingRepo{db: db} }

func (r *SettingRepo) ListAll(ctx context.Context) ([]model.Setting, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, `key`, value FROM settings ORDER BY `key`")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Setting{}
	for rows.Next() {
		var s model.Setting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Set inserts or replaces the value stored under key.
func (r *SettingRepo) Set(ctx context.Context, key, value string) error {
	const q = "INSERT INTO settings (`key`, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)"
	_, err := r.db.ExecContext(ctx, q, key, value)
	return translate(err)
}
