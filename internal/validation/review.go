package validation

import (
	"fmt"

	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/period"
)

type QuarterlyReviewInput struct {
	Quarter   period.Quarter
	Overrides model.Grading
	Narrative model.Narrative
}

// ParseQuarterlyReview coerces a quarterly review payload. "grading" is an
// optional object of objective id to grade.
func ParseQuarterlyReview(p Payload) (QuarterlyReviewInput, error) {
	var in QuarterlyReviewInput

	quarter, err := p.Int("quarter")
	if err != nil {
		return in, err
	}
	if err := ValidateQuarter(quarter); err != nil {
		return in, err
	}

	year, err := p.Int("year")
	if err != nil {
		return in, err
	}
	if err := ValidateYear(year); err != nil {
		return in, err
	}

	overrides, err := parseGrading(p["grading"])
	if err != nil {
		return in, err
	}

	in.Quarter = period.Quarter{Year: year, Quarter: quarter}
	in.Overrides = overrides
	in.Narrative = model.Narrative{
		Achievements: p.String("achievements"),
		Challenges:   p.String("challenges"),
		Lessons:      p.String("lessons"),
		NextSteps:    p.String("next_steps"),
	}
	return in, nil
}

func parseGrading(raw any) (model.Grading, error) {
	if raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, NewError("grading", "must be an object of objective id to grade")
	}

	grading := make(model.Grading, len(obj))
	for key, value := range obj {
		id, ok := toInt(key)
		if !ok || id <= 0 {
			return nil, NewError("grading", fmt.Sprintf("invalid objective id %q", key))
		}
		grade, ok := toFloat(value)
		if !ok {
			return nil, NewError("grading", fmt.Sprintf("grade for objective %d must be a number", id))
		}
		grading[id] = grade
	}
	return grading, nil
}
