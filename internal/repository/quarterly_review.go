package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/period"
)

var (
	ErrQuarterlyReviewNotFound = errors.New("quarterly review not found")
)

type QuarterlyReviewRepository interface {
	Create(review *model.QuarterlyReview) error
	ByPeriod(userID string, quarter period.Quarter) (*model.QuarterlyReview, error)
	Reviews(userID string) ([]*model.QuarterlyReview, error)
	Update(review *model.QuarterlyReview) error
}

type quarterlyReviewRepository struct {
	db *sqlx.DB
}

func NewQuarterlyReviewRepository(db *sqlx.DB) QuarterlyReviewRepository {
	return &quarterlyReviewRepository{db: db}
}

func (r *quarterlyReviewRepository) Create(review *model.QuarterlyReview) error {
	query := `INSERT INTO quarterly_reviews
	          (user_id, quarter, year, achievements, challenges, lessons, next_steps, grading, submitted_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`

	return r.db.QueryRow(query,
		review.UserID,
		review.Quarter,
		review.Year,
		review.Achievements,
		review.Challenges,
		review.Lessons,
		review.NextSteps,
		review.Grading,
		review.SubmittedAt,
		review.UpdatedAt,
	).Scan(&review.ID)
}

func (r *quarterlyReviewRepository) ByPeriod(userID string, quarter period.Quarter) (*model.QuarterlyReview, error) {
	review := &model.QuarterlyReview{}
	query := `SELECT * FROM quarterly_reviews WHERE user_id = $1 AND quarter = $2 AND year = $3`

	err := r.db.Get(review, query, userID, quarter.Quarter, quarter.Year)
	if err == sql.ErrNoRows {
		return nil, ErrQuarterlyReviewNotFound
	}
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (r *quarterlyReviewRepository) Reviews(userID string) ([]*model.QuarterlyReview, error) {
	var reviews []*model.QuarterlyReview
	query := `SELECT * FROM quarterly_reviews WHERE user_id = $1 ORDER BY year DESC, quarter DESC`

	err := r.db.Select(&reviews, query, userID)
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// Update rewrites the narrative and grading of an existing review in place.
func (r *quarterlyReviewRepository) Update(review *model.QuarterlyReview) error {
	query := `UPDATE quarterly_reviews
	          SET achievements = $1, challenges = $2, lessons = $3, next_steps = $4, grading = $5, updated_at = $6
	          WHERE id = $7`

	result, err := r.db.Exec(query,
		review.Achievements,
		review.Challenges,
		review.Lessons,
		review.NextSteps,
		review.Grading,
		review.UpdatedAt,
		review.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrQuarterlyReviewNotFound
	}

	return nil
}
