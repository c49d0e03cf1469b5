package service

import (
	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/validation"
)

// CheckProgress enforces the coupling between a key result's reported status
// and its metric value. A nil metric means no value was reported.
//
//	Not Started  metric absent or exactly 0
//	In Progress  any number, or absent
//	Done         exactly 1
func CheckProgress(status model.KeyResultStatus, metric *float64) error {
	switch status {
	case model.StatusNotStarted:
		if metric != nil && *metric != 0 {
			return validation.NewError("metric_value", "cannot set progress for Not Started")
		}
	case model.StatusInProgress:
	case model.StatusDone:
		if metric == nil {
			return validation.NewError("metric_value", "progress value must be a number when status is Done")
		}
		if *metric != 1 {
			return validation.NewError("metric_value", "progress value must be 1.0 to mark as Done")
		}
	default:
		return validation.NewError("status", "unknown status "+string(status))
	}
	return nil
}
