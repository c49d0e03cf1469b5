package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/templui/okrledger/internal/period"
)

// Grading maps objective IDs to a grade in [0, 1]. Stored as a JSON column.
type Grading map[int64]float64

func (g Grading) Value() (driver.Value, error) {
	if g == nil {
		return "{}", nil
	}
	b, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (g *Grading) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*g = Grading{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported grading column type %T", src)
	}

	out := Grading{}
	if len(raw) > 0 {
		err := json.Unmarshal(raw, &out)
		if err != nil {
			return fmt.Errorf("failed to decode grading: %w", err)
		}
	}
	*g = out
	return nil
}

// Narrative holds the free-text sections of a quarterly review.
type Narrative struct {
	Achievements string `db:"achievements" json:"achievements"`
	Challenges   string `db:"challenges" json:"challenges"`
	Lessons      string `db:"lessons" json:"lessons"`
	NextSteps    string `db:"next_steps" json:"next_steps"`
}

// QuarterlyReview is upserted: there is at most one per (user, quarter, year).
type QuarterlyReview struct {
	ID          int64     `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Quarter     int       `db:"quarter" json:"quarter"`
	Year        int       `db:"year" json:"year"`
	Grading     Grading   `db:"grading" json:"grading"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
	Narrative

	// Computed fields (not in database)
	NarrativeHTML map[string]string `db:"-" json:"narrative_html,omitempty"`
}

func (r *QuarterlyReview) Period() period.Quarter {
	return period.Quarter{Year: r.Year, Quarter: r.Quarter}
}
