package model

import (
	"strings"
	"time"
)

type KeyResultStatus string

const (
	StatusNotStarted KeyResultStatus = "Not Started"
	StatusInProgress KeyResultStatus = "In Progress"
	StatusDone       KeyResultStatus = "Done"
)

// ParseKeyResultStatus accepts the display form as well as lower, snake and
// kebab case variants ("not_started", "in-progress", "done").
func ParseKeyResultStatus(s string) (KeyResultStatus, bool) {
	normalized := strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch normalized {
	case "not started":
		return StatusNotStarted, true
	case "in progress":
		return StatusInProgress, true
	case "done":
		return StatusDone, true
	}
	return "", false
}

type KeyResult struct {
	ID          int64      `db:"id" json:"id"`
	ObjectiveID int64      `db:"objective_id" json:"objective_id"`
	Title       string     `db:"title" json:"title"`
	CreatedAt   *time.Time `db:"created_at" json:"created_at,omitempty"`

	// Computed fields (not in database)
	Status KeyResultStatus `db:"-" json:"status"`
}

// StartedAt is the key result's own creation time, or the objective's when
// the key result has none.
func (kr *KeyResult) StartedAt(objective *Objective) time.Time {
	if kr.CreatedAt != nil && !kr.CreatedAt.IsZero() {
		return *kr.CreatedAt
	}
	return objective.CreatedAt
}
