package model

import (
	"time"
)

type Objective struct {
	ID          int64     `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	DueDate     time.Time `db:"due_date" json:"due_date"`

	// Computed fields (not in database)
	KeyResults []*KeyResult `db:"-" json:"key_results,omitempty"`
}

// Overdue reports whether the objective's due date has passed at now.
func (o *Objective) Overdue(now time.Time) bool {
	return now.After(o.DueDate)
}
