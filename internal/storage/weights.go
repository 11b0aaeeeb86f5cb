package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sebasblancogonz/bulkup/internal/models"
)

const recordColumns = `id, user_id, plan_id, day, exercise_index, exercise_name,
        week_start, sets, note, needs_sync, updated_at`

// FindByIdentity returns the single record for the identity tuple, or nil
// when none exists. The UNIQUE index guarantees at most one row.
func (s *Storage) FindByIdentity(ctx context.Context, id models.RecordIdentity) (*models.WeightRecord, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+recordColumns+`
         FROM weight_records
         WHERE user_id = ? AND plan_id = ? AND day = ?
           AND exercise_index = ? AND exercise_name = ? AND week_start = ?`,
		id.UserID, id.PlanID, id.Day, id.ExerciseIndex, id.ExerciseName, id.WeekStart,
	)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to query weight record: %w", err)
	}
	return rec, nil
}

// FindByWeek returns every record of the user for one week.
func (s *Storage) FindByWeek(ctx context.Context, userID, weekStart string) ([]models.WeightRecord, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+recordColumns+`
         FROM weight_records
         WHERE user_id = ? AND week_start = ?
         ORDER BY day, exercise_index`,
		userID, weekStart,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to query week %s: %w", weekStart, err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// FindPendingSync returns the user's records still waiting for a remote ack.
func (s *Storage) FindPendingSync(ctx context.Context, userID string) ([]models.WeightRecord, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+recordColumns+`
         FROM weight_records
         WHERE user_id = ? AND needs_sync = 1
         ORDER BY week_start, day, exercise_index`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to query pending records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// Upsert inserts the record or, when one already exists for the same
// identity tuple, replaces its sets, note, sync flag and timestamp.
// It never creates a second row for the same identity.
func (s *Storage) Upsert(ctx context.Context, rec *models.WeightRecord) error {
	setsJSON, err := json.Marshal(rec.Sets)
	if err != nil {
		return fmt.Errorf("Failed to marshal sets: %w", err)
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO weight_records
         (id, user_id, plan_id, day, exercise_index, exercise_name,
          week_start, sets, note, needs_sync, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT (user_id, plan_id, day, exercise_index, exercise_name, week_start)
         DO UPDATE SET
            sets = excluded.sets,
            note = excluded.note,
            needs_sync = excluded.needs_sync,
            updated_at = excluded.updated_at`,
		rec.ID,
		rec.UserID,
		rec.PlanID,
		rec.Day,
		rec.ExerciseIndex,
		rec.ExerciseName,
		rec.WeekStart,
		string(setsJSON),
		rec.Note,
		boolToInt(rec.NeedsSync),
		rec.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("Failed to upsert weight record: %w", err)
	}
	return nil
}

// MarkSynced clears the needs-sync flag after a successful remote push.
func (s *Storage) MarkSynced(ctx context.Context, id models.RecordIdentity) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE weight_records
         SET needs_sync = 0
         WHERE user_id = ? AND plan_id = ? AND day = ?
           AND exercise_index = ? AND exercise_name = ? AND week_start = ?`,
		id.UserID, id.PlanID, id.Day, id.ExerciseIndex, id.ExerciseName, id.WeekStart,
	)
	if err != nil {
		return fmt.Errorf("Failed to mark record synced: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.WeightRecord, error) {
	var rec models.WeightRecord
	var setsJSON, updatedAt string
	var needsSync int

	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.PlanID,
		&rec.Day,
		&rec.ExerciseIndex,
		&rec.ExerciseName,
		&rec.WeekStart,
		&setsJSON,
		&rec.Note,
		&needsSync,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(setsJSON), &rec.Sets); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal sets: %w", err)
	}
	rec.NeedsSync = needsSync != 0
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &rec, nil
}

func collectRecords(rows *sql.Rows) ([]models.WeightRecord, error) {
	var records []models.WeightRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("Failed to scan weight record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Failed iterating weight records: %w", err)
	}
	return records, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
