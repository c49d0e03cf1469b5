package model

import (
	"github.com/templui/okrledger/internal/period"
)

// MonthSlot is one cell of a key result's monthly review calendar.
type MonthSlot struct {
	period.Month
	State   period.SlotState `json:"state"`
	Value   *float64         `json:"value,omitempty"`
	EntryID int64            `json:"entry_id,omitempty"`
}

// QuarterSlot is one cell of an objective's quarterly review calendar.
type QuarterSlot struct {
	period.Quarter
	State    period.SlotState `json:"state"`
	Grade    *float64         `json:"grade,omitempty"`
	ReviewID int64            `json:"review_id,omitempty"`
}

type KeyResultCoverage struct {
	KeyResultID int64       `json:"key_result_id"`
	ObjectiveID int64       `json:"objective_id"`
	Slots       []MonthSlot `json:"slots"`
}

type ObjectiveCoverage struct {
	ObjectiveID int64         `json:"objective_id"`
	Slots       []QuarterSlot `json:"slots"`
}

// MissingReview is a key result period that is overdue or due now.
type MissingReview struct {
	ObjectiveID    int64            `json:"objective_id"`
	ObjectiveTitle string           `json:"objective_title"`
	KeyResultID    int64            `json:"key_result_id"`
	KeyResultTitle string           `json:"key_result_title"`
	Period         period.Month     `json:"period"`
	State          period.SlotState `json:"state"`
}
