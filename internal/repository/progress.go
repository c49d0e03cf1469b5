package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/period"
)

var (
	ErrProgressEntryNotFound = errors.New("progress entry not found")
)

// HistoryFilter narrows History to a month and/or year. Zero means any.
type HistoryFilter struct {
	Month int
	Year  int
}

// ProgressRepository is the append-only progress ledger. There is no update
// and no delete: a resubmission for a period is a new row.
type ProgressRepository interface {
	Append(entry *model.ProgressEntry) error
	LatestForPeriod(keyResultID int64, month period.Month) (*model.ProgressEntry, error)
	LatestForKeyResult(keyResultID int64) (*model.ProgressEntry, error)
	History(keyResultIDs []int64, filter HistoryFilter) (map[int64][]*model.ProgressEntry, error)
	InQuarter(keyResultID int64, quarter period.Quarter) ([]*model.ProgressEntry, error)
}

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Append(entry *model.ProgressEntry) error {
	query := `INSERT INTO progress_entries
	          (key_result_id, user_id, month, year, status, metric_value, evidence, comments, blockers, resources_needed, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`

	err := r.db.QueryRow(query,
		entry.KeyResultID,
		entry.UserID,
		entry.Month,
		entry.Year,
		entry.Status,
		entry.MetricValue,
		entry.Evidence,
		entry.Comments,
		entry.Blockers,
		entry.ResourcesNeeded,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to append progress entry: %w", err)
	}

	return nil
}

func (r *progressRepository) LatestForPeriod(keyResultID int64, month period.Month) (*model.ProgressEntry, error) {
	entry := &model.ProgressEntry{}
	query := `SELECT * FROM progress_entries
	          WHERE key_result_id = $1 AND year = $2 AND month = $3
	          ORDER BY id DESC
	          LIMIT 1`

	err := r.db.Get(entry, query, keyResultID, month.Year, month.Month)
	if err == sql.ErrNoRows {
		return nil, ErrProgressEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *progressRepository) LatestForKeyResult(keyResultID int64) (*model.ProgressEntry, error) {
	entry := &model.ProgressEntry{}
	query := `SELECT * FROM progress_entries WHERE key_result_id = $1 ORDER BY id DESC LIMIT 1`

	err := r.db.Get(entry, query, keyResultID)
	if err == sql.ErrNoRows {
		return nil, ErrProgressEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// History returns every entry of the given key results, grouped by key
// result and sorted newest period first, newest submission first within a
// period. Key results without entries are absent from the map.
func (r *progressRepository) History(keyResultIDs []int64, filter HistoryFilter) (map[int64][]*model.ProgressEntry, error) {
	history := make(map[int64][]*model.ProgressEntry)
	if len(keyResultIDs) == 0 {
		return history, nil
	}

	query := `SELECT * FROM progress_entries WHERE key_result_id IN (?)`
	args := []any{keyResultIDs}
	if filter.Month != 0 {
		query += ` AND month = ?`
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		query += ` AND year = ?`
		args = append(args, filter.Year)
	}
	query += ` ORDER BY key_result_id ASC, year DESC, month DESC, id DESC`

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}

	var entries []*model.ProgressEntry
	err = r.db.Select(&entries, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		history[entry.KeyResultID] = append(history[entry.KeyResultID], entry)
	}

	return history, nil
}

func (r *progressRepository) InQuarter(keyResultID int64, quarter period.Quarter) ([]*model.ProgressEntry, error) {
	months := quarter.Months()
	var entries []*model.ProgressEntry
	query := `SELECT * FROM progress_entries
	          WHERE key_result_id = $1 AND year = $2 AND month BETWEEN $3 AND $4
	          ORDER BY year DESC, month DESC, id DESC`

	err := r.db.Select(&entries, query, keyResultID, quarter.Year, months[0].Month, months[2].Month)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
