package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/okrledger/internal/model"
)

var (
	ErrObjectiveNotFound = errors.New("objective not found")
)

type ObjectiveRepository interface {
	Create(objective *model.Objective) error
	ByID(id int64) (*model.Objective, error)
	Objectives(userID string) ([]*model.Objective, error)
	Update(objective *model.Objective) error
	Delete(id int64) error
}

type objectiveRepository struct {
	db *sqlx.DB
}

func NewObjectiveRepository(db *sqlx.DB) ObjectiveRepository {
	return &objectiveRepository{db: db}
}

func (r *objectiveRepository) Create(objective *model.Objective) error {
	query := `INSERT INTO objectives (user_id, title, description, created_at, due_date)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	return r.db.QueryRow(query,
		objective.UserID,
		objective.Title,
		objective.Description,
		objective.CreatedAt,
		objective.DueDate,
	).Scan(&objective.ID)
}

func (r *objectiveRepository) ByID(id int64) (*model.Objective, error) {
	objective := &model.Objective{}
	query := `SELECT * FROM objectives WHERE id = $1`

	err := r.db.Get(objective, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrObjectiveNotFound
	}
	if err != nil {
		return nil, err
	}

	return objective, nil
}

func (r *objectiveRepository) Objectives(userID string) ([]*model.Objective, error) {
	var objectives []*model.Objective
	query := `SELECT * FROM objectives WHERE user_id = $1 ORDER BY due_date ASC, id ASC`

	err := r.db.Select(&objectives, query, userID)
	if err != nil {
		return nil, err
	}

	return objectives, nil
}

func (r *objectiveRepository) Update(objective *model.Objective) error {
	query := `UPDATE objectives
	          SET title = $1, description = $2, due_date = $3
	          WHERE id = $4`

	result, err := r.db.Exec(query,
		objective.Title,
		objective.Description,
		objective.DueDate,
		objective.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrObjectiveNotFound
	}

	return nil
}

// Delete removes the objective together with its key results and their
// ledger rows. This is the only path that ever deletes progress entries.
func (r *objectiveRepository) Delete(id int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM progress_entries
	                  WHERE key_result_id IN (SELECT id FROM key_results WHERE objective_id = $1)`, id)
	if err != nil {
		return fmt.Errorf("failed to delete progress entries: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM key_results WHERE objective_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete key results: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM objectives WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrObjectiveNotFound
	}

	return tx.Commit()
}
