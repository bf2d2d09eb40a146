package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmakino/kotoba/internal/profile"
)

// LoadProfile reads the persisted learner profile. An absent or corrupt row
// is recovered by returning a fresh default profile; loading never fails
// the caller into an unusable state.
func (s *Store) LoadProfile(ctx context.Context) (*profile.Profile, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM profile WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	p, err := profile.Decode([]byte(data))
	if err != nil {
		slog.Warn("stored profile unreadable, starting fresh", "error", err)
		return profile.New(), nil
	}
	return p, nil
}

// SaveProfile writes the full profile as a single row, replacing any
// previous version.
func (s *Store) SaveProfile(ctx context.Context, p *profile.Profile) error {
	data, err := profile.Encode(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profile (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// ResetProfile deletes the stored profile and the review log.
func (s *Store) ResetProfile(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profile`); err != nil {
		return fmt.Errorf("reset profile: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM review_log`); err != nil {
		return fmt.Errorf("reset review log: %w", err)
	}
	return nil
}
