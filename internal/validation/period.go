package validation

import (
	"fmt"
	"net/url"

	"github.com/templui/okrledger/internal/period"
)

func ValidateMonth(month int) error {
	if !period.ValidMonth(month) {
		return NewError("month", "must be between 1 and 12")
	}
	return nil
}

func ValidateQuarter(quarter int) error {
	if !period.ValidQuarter(quarter) {
		return NewError("quarter", "must be between 1 and 4")
	}
	return nil
}

func ValidateYear(year int) error {
	if !period.ValidYear(year) {
		return NewError("year", fmt.Sprintf("must be between %d and %d", period.MinYear, period.MaxYear))
	}
	return nil
}

// ParseQuarterQuery reads optional quarter and year query parameters. Both or
// neither must be given; neither yields nil.
func ParseQuarterQuery(query url.Values) (*period.Quarter, error) {
	quarter, hasQuarter, err := ParseInt("quarter", query.Get("quarter"))
	if err != nil {
		return nil, err
	}
	year, hasYear, err := ParseInt("year", query.Get("year"))
	if err != nil {
		return nil, err
	}

	switch {
	case !hasQuarter && !hasYear:
		return nil, nil
	case !hasQuarter:
		return nil, NewError("quarter", "is required when year is given")
	case !hasYear:
		return nil, NewError("year", "is required when quarter is given")
	}

	if err := ValidateQuarter(quarter); err != nil {
		return nil, err
	}
	if err := ValidateYear(year); err != nil {
		return nil, err
	}
	return &period.Quarter{Year: year, Quarter: quarter}, nil
}
