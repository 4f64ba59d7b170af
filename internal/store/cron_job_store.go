package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Clawdomoto/moto-dashboard/internal/crontab"
)

// StoredCronJob is a cron job row with its store identity.
type StoredCronJob struct {
	ID        int64     `json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`
	crontab.Job
}

// CronJobStore persists parsed cron jobs, keyed by the CLI job id.
type CronJobStore struct {
	db *sql.DB
}

// NewCronJobStore creates a new CronJobStore with the given database connection.
func NewCronJobStore(db *sql.DB) *CronJobStore {
	return &CronJobStore{db: db}
}

const cronJobSelectColumns = "id, job_id, name, schedule, schedule_human, next_run, last_run, status, target, agent, updated_at"

const insertCronJobSQL = `INSERT INTO cron_jobs (job_id, name, schedule, schedule_human, next_run, last_run, status, target, agent, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`

// Upsert inserts the job or updates the existing row with the same job_id.
func (s *CronJobStore) Upsert(ctx context.Context, job crontab.Job) (*StoredCronJob, error) {
	query := insertCronJobSQL + `
	ON CONFLICT (job_id) DO UPDATE SET
		name = EXCLUDED.name,
		schedule = EXCLUDED.schedule,
		schedule_human = EXCLUDED.schedule_human,
		next_run = EXCLUDED.next_run,
		last_run = EXCLUDED.last_run,
		status = EXCLUDED.status,
		target = EXCLUDED.target,
		agent = EXCLUDED.agent,
		updated_at = NOW()
	RETURNING ` + cronJobSelectColumns

	row := s.db.QueryRowContext(ctx, query, cronJobArgs(job)...)
	stored, err := scanCronJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cron job: %w", err)
	}
	return &stored, nil
}

// Sync replaces the whole cron job table with the given jobs in one
// transaction, mirroring the current CLI listing.
func (s *CronJobStore) Sync(ctx context.Context, jobs []crontab.Job) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cron_jobs`); err != nil {
		return fmt.Errorf("failed to clear cron jobs: %w", err)
	}

	for _, job := range jobs {
		if _, err := tx.ExecContext(ctx, insertCronJobSQL, cronJobArgs(job)...); err != nil {
			return fmt.Errorf("failed to insert cron job %s: %w", job.JobID, err)
		}
	}

	return tx.Commit()
}

// List retrieves all stored cron jobs ordered by name.
func (s *CronJobStore) List(ctx context.Context) ([]StoredCronJob, error) {
	query := `SELECT ` + cronJobSelectColumns + ` FROM cron_jobs ORDER BY name, job_id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cron jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]StoredCronJob, 0)
	for rows.Next() {
		job, err := scanCronJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cron job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading cron jobs: %w", err)
	}

	return jobs, nil
}

// GetByJobID retrieves one cron job by its CLI id.
func (s *CronJobStore) GetByJobID(ctx context.Context, jobID string) (*StoredCronJob, error) {
	query := `SELECT ` + cronJobSelectColumns + ` FROM cron_jobs WHERE job_id = $1`
	job, err := scanCronJob(s.db.QueryRowContext(ctx, query, jobID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cron job: %w", err)
	}
	return &job, nil
}

func cronJobArgs(job crontab.Job) []interface{} {
	return []interface{}{
		job.JobID,
		job.Name,
		job.Schedule,
		job.ScheduleHuman,
		nullableString(job.NextRun),
		nullableString(job.LastRun),
		job.Status,
		job.Target,
		job.Agent,
	}
}

func scanCronJob(row rowScanner) (StoredCronJob, error) {
	var job StoredCronJob
	var nextRun, lastRun sql.NullString

	err := row.Scan(
		&job.ID,
		&job.JobID,
		&job.Name,
		&job.Schedule,
		&job.ScheduleHuman,
		&nextRun,
		&lastRun,
		&job.Status,
		&job.Target,
		&job.Agent,
		&job.UpdatedAt,
	)
	if err != nil {
		return StoredCronJob{}, err
	}

	if nextRun.Valid {
		job.NextRun = &nextRun.String
	}
	if lastRun.Valid {
		job.LastRun = &lastRun.String
	}
	return job, nil
}
