package validation

import (
	"net/url"

	"github.com/templui/okrledger/internal/model"
)

// ProgressInput is a submission that passed boundary coercion. Status and
// metric coupling is checked later by the status engine.
type ProgressInput struct {
	KeyResultID     int64
	Status          model.KeyResultStatus
	MetricValue     *float64
	Evidence        string
	Comments        string
	Blockers        string
	ResourcesNeeded string
	Month           int
	Year            int
}

// ParseProgress coerces a loosely-typed progress payload.
func ParseProgress(p Payload) (ProgressInput, error) {
	var in ProgressInput

	keyResultID, err := p.Int64("key_result_id")
	if err != nil {
		return in, err
	}
	if keyResultID <= 0 {
		return in, NewError("key_result_id", "must be positive")
	}

	status, ok := model.ParseKeyResultStatus(p.String("status"))
	if !ok {
		return in, NewError("status", "must be one of Not Started, In Progress, Done")
	}

	metric, err := p.OptionalFloat("metric_value")
	if err != nil {
		if status == model.StatusDone {
			return in, NewError("metric_value", "progress value must be a number when status is Done")
		}
		return in, NewError("metric_value", "progress value must be a number")
	}

	month, err := p.Int("month")
	if err != nil {
		return in, err
	}
	if err := ValidateMonth(month); err != nil {
		return in, err
	}

	year, err := p.Int("year")
	if err != nil {
		return in, err
	}
	if err := ValidateYear(year); err != nil {
		return in, err
	}

	return ProgressInput{
		KeyResultID:     keyResultID,
		Status:          status,
		MetricValue:     metric,
		Evidence:        p.String("evidence"),
		Comments:        p.String("comments"),
		Blockers:        p.String("blockers"),
		ResourcesNeeded: p.String("resources_needed"),
		Month:           month,
		Year:            year,
	}, nil
}

// ProgressQuery is the parsed query string of a progress read.
type ProgressQuery struct {
	KeyResultIDs []int64
	Month        int
	Year         int
}

func ParseProgressQuery(query url.Values) (ProgressQuery, error) {
	var q ProgressQuery

	ids, err := ParseIDList("key_result_ids", query["key_result_ids"])
	if err != nil {
		return q, err
	}
	q.KeyResultIDs = ids

	month, hasMonth, err := ParseInt("month", query.Get("month"))
	if err != nil {
		return q, err
	}
	if hasMonth {
		if err := ValidateMonth(month); err != nil {
			return q, err
		}
		q.Month = month
	}

	year, hasYear, err := ParseInt("year", query.Get("year"))
	if err != nil {
		return q, err
	}
	if hasYear {
		if err := ValidateYear(year); err != nil {
			return q, err
		}
		q.Year = year
	}

	return q, nil
}
