package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/okrledger/internal/model"
)

var (
	ErrKeyResultNotFound = errors.New("key result not found")
)

type KeyResultRepository interface {
	Create(keyResult *model.KeyResult) error
	ByID(id int64) (*model.KeyResult, error)
	KeyResults(objectiveID int64) ([]*model.KeyResult, error)
}

type keyResultRepository struct {
	db *sqlx.DB
}

func NewKeyResultRepository(db *sqlx.DB) KeyResultRepository {
	return &keyResultRepository{db: db}
}

func (r *keyResultRepository) Create(keyResult *model.KeyResult) error {
	query := `INSERT INTO key_results (objective_id, title, created_at)
	          VALUES ($1, $2, $3)
	          RETURNING id`

	return r.db.QueryRow(query,
		keyResult.ObjectiveID,
		keyResult.Title,
		keyResult.CreatedAt,
	).Scan(&keyResult.ID)
}

func (r *keyResultRepository) ByID(id int64) (*model.KeyResult, error) {
	keyResult := &model.KeyResult{}
	query := `SELECT * FROM key_results WHERE id = $1`

	err := r.db.Get(keyResult, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrKeyResultNotFound
	}
	if err != nil {
		return nil, err
	}

	return keyResult, nil
}

func (r *keyResultRepository) KeyResults(objectiveID int64) ([]*model.KeyResult, error) {
	var keyResults []*model.KeyResult
	query := `SELECT * FROM key_results WHERE objective_id = $1 ORDER BY id ASC`

	err := r.db.Select(&keyResults, query, objectiveID)
	if err != nil {
		return nil, err
	}

	return keyResults, nil
}
