package model

import (
	"time"

	"github.com/templui/okrledger/internal/period"
)

// ProgressEntry is one row of the append-only progress ledger. Rows are never
// updated; a second submission for the same period is a new row and the one
// with the highest ID is the current value for that period.
type ProgressEntry struct {
	ID              int64           `db:"id" json:"id"`
	KeyResultID     int64           `db:"key_result_id" json:"key_result_id"`
	UserID          string          `db:"user_id" json:"user_id"`
	Month           int             `db:"month" json:"month"`
	Year            int             `db:"year" json:"year"`
	Status          KeyResultStatus `db:"status" json:"status"`
	MetricValue     *float64        `db:"metric_value" json:"metric_value"`
	Evidence        string          `db:"evidence" json:"evidence"`
	Comments        string          `db:"comments" json:"comments"`
	Blockers        string          `db:"blockers" json:"blockers"`
	ResourcesNeeded string          `db:"resources_needed" json:"resources_needed"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

func (e *ProgressEntry) Period() period.Month {
	return period.Month{Year: e.Year, Month: e.Month}
}

// Value is the metric value, or 0 when none was reported.
func (e *ProgressEntry) Value() float64 {
	if e == nil || e.MetricValue == nil {
		return 0
	}
	return *e.MetricValue
}
