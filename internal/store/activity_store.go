package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Clawdomoto/moto-dashboard/internal/memorylog"
)

// StoredActivity is an activity row with its store identity.
type StoredActivity struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	memorylog.Activity
}

// ActivityStore persists parsed activities.
type ActivityStore struct {
	db *sql.DB
}

// NewActivityStore creates a new ActivityStore with the given database connection.
func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

const activitySelectColumns = "id, ts, action_type, description, status, tokens_used, source, created_at"

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// Insert stores one activity.
func (s *ActivityStore) Insert(ctx context.Context, activity memorylog.Activity) (*StoredActivity, error) {
	query := `INSERT INTO activities (ts, action_type, description, status, tokens_used, source)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + activitySelectColumns

	row := s.db.QueryRowContext(ctx, query,
		activity.Timestamp,
		activity.ActionType,
		activity.Description,
		activity.Status,
		nullableInt(activity.TokensUsed),
		activity.Source,
	)

	stored, err := scanActivity(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert activity: %w", err)
	}
	return &stored, nil
}

// InsertBatch stores a batch of activities in one transaction.
func (s *ActivityStore) InsertBatch(ctx context.Context, activities []memorylog.Activity) error {
	if len(activities) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO activities (ts, action_type, description, status, tokens_used, source)
	VALUES ($1, $2, $3, $4, $5, $6)`

	for _, activity := range activities {
		if _, err := tx.ExecContext(ctx, query,
			activity.Timestamp,
			activity.ActionType,
			activity.Description,
			activity.Status,
			nullableInt(activity.TokensUsed),
			activity.Source,
		); err != nil {
			return fmt.Errorf("failed to insert activity batch: %w", err)
		}
	}

	return tx.Commit()
}

// List retrieves activities ordered by timestamp descending.
func (s *ActivityStore) List(ctx context.Context, limit int) ([]StoredActivity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	query := `SELECT ` + activitySelectColumns + ` FROM activities ORDER BY ts DESC, id DESC LIMIT $1`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	activities := make([]StoredActivity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading activities: %w", err)
	}

	return activities, nil
}

// Clear removes all stored activities.
func (s *ActivityStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM activities`); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row rowScanner) (StoredActivity, error) {
	var activity StoredActivity
	var tokensUsed sql.NullInt64

	err := row.Scan(
		&activity.ID,
		&activity.Timestamp,
		&activity.ActionType,
		&activity.Description,
		&activity.Status,
		&tokensUsed,
		&activity.Source,
		&activity.CreatedAt,
	)
	if err != nil {
		return StoredActivity{}, err
	}

	if tokensUsed.Valid {
		value := int(tokensUsed.Int64)
		activity.TokensUsed = &value
	}
	return activity, nil
}
