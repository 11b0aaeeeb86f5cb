package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/sebasblancogonz/bulkup/internal/models"
)

// ImportPlan parses a TOML plan definition, stores it and makes it the
// active plan. Any previously active plan is deactivated.
func (s *Storage) ImportPlan(ctx context.Context, tomlData []byte) (*models.TrainingPlan, error) {
	var planTOML models.PlanTOML
	if err := toml.Unmarshal(tomlData, &planTOML); err != nil {
		return nil, fmt.Errorf("Invalid TOML format: %w", err)
	}
	if planTOML.Name == "" {
		return nil, fmt.Errorf("Plan has no name")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE training_plans SET is_active = 0`); err != nil {
		return nil, fmt.Errorf("Failed to deactivate plans: %w", err)
	}

	planID := uuid.New().String()
	createdAt := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO training_plans (id, name, description, created_at, is_active)
         VALUES (?, ?, ?, ?, 1)`,
		planID,
		planTOML.Name,
		planTOML.Description,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to create plan: %w", err)
	}

	plan := &models.TrainingPlan{
		ID:          planID,
		Name:        planTOML.Name,
		Description: planTOML.Description,
		CreatedAt:   createdAt,
	}

	for _, dayTOML := range planTOML.Days {
		day := models.PlanDay{Day: dayTOML.Name}
		for idx, exTOML := range dayTOML.Exercises {
			ex := models.PlanExercise{
				ID:         uuid.New().String(),
				Name:       exTOML.Name,
				OrderIndex: idx,
				Sets:       exTOML.Sets,
				Reps:       exTOML.Reps,
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO plan_exercises (id, plan_id, day, order_index, name, sets, reps)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				ex.ID, planID, day.Day, ex.OrderIndex, ex.Name, ex.Sets, ex.Reps,
			)
			if err != nil {
				return nil, fmt.Errorf("Failed to create plan exercise: %w", err)
			}
			day.Exercises = append(day.Exercises, ex)
		}
		plan.Days = append(plan.Days, day)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Failed to commit transaction: %w", err)
	}

	return plan, nil
}

// ActivePlan loads the currently active training plan, or nil when no plan
// has been imported yet.
func (s *Storage) ActivePlan(ctx context.Context) (*models.TrainingPlan, error) {
	var plan models.TrainingPlan
	var createdAt string

	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, description, created_at
         FROM training_plans
         WHERE is_active = 1`,
	).Scan(&plan.ID, &plan.Name, &plan.Description, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to load active plan: %w", err)
	}
	plan.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, day, order_index, name, sets, reps
         FROM plan_exercises
         WHERE plan_id = ?
         ORDER BY day, order_index`,
		plan.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to load plan exercises: %w", err)
	}
	defer rows.Close()

	dayIdx := make(map[string]int)
	for rows.Next() {
		var ex models.PlanExercise
		var day string
		if err := rows.Scan(&ex.ID, &day, &ex.OrderIndex, &ex.Name, &ex.Sets, &ex.Reps); err != nil {
			return nil, fmt.Errorf("Failed to scan plan exercise: %w", err)
		}

		i, ok := dayIdx[day]
		if !ok {
			plan.Days = append(plan.Days, models.PlanDay{Day: day})
			i = len(plan.Days) - 1
			dayIdx[day] = i
		}
		plan.Days[i].Exercises = append(plan.Days[i].Exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Failed iterating plan exercises: %w", err)
	}

	return &plan, nil
}
