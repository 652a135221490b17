package projection

import (
	"fmt"
	"math"

	"github.com/iitbhu2k25/DSS-Nextjs/apperrors"
	"github.com/iitbhu2k25/DSS-Nextjs/models"
)

// Mode selects how a projection request is answered. It is either SingleYear
// or Range.
type Mode interface {
	Name() string
	mode()
}

type SingleYear struct {
	Year int
}

type Range struct {
	Start int
	End   int
}

func (SingleYear) Name() string { return "single_year" }
func (Range) Name() string      { return "range" }

func (SingleYear) mode() {}
func (Range) mode()      {}

// Accepted window for requested years.
const (
	MinYear = 1
	MaxYear = 9999
)

// Span is the number of years in the range, zero when Start > End. It
// saturates at math.MaxInt instead of overflowing.
func (r Range) Span() int {
	if r.Start > r.End {
		return 0
	}
	diff := uint64(r.End) - uint64(r.Start)
	if diff >= math.MaxInt {
		return math.MaxInt
	}
	return int(diff) + 1
}

// ParseMode turns the optional year fields of a request into a Mode. A
// present year takes precedence over a range; ambiguous reports that both were
// supplied. maxSpan bounds the number of years a range may cover; zero or
// negative disables the bound.
func ParseMode(year, startYear, endYear models.FlexInt, maxSpan int) (mode Mode, ambiguous bool, err error) {
	hasRange := startYear.Present() && endYear.Present()

	if year.Present() {
		if err := checkYear("year", year.Value); err != nil {
			return nil, false, err
		}
		return SingleYear{Year: int(year.Value)}, hasRange, nil
	}

	switch {
	case hasRange:
	case startYear.Present():
		return nil, false, apperrors.MissingField("end_year")
	case endYear.Present():
		return nil, false, apperrors.MissingField("start_year")
	default:
		return nil, false, apperrors.MissingField("year", "start_year", "end_year")
	}

	if err := checkYear("start_year", startYear.Value); err != nil {
		return nil, false, err
	}
	if err := checkYear("end_year", endYear.Value); err != nil {
		return nil, false, err
	}

	r := Range{Start: int(startYear.Value), End: int(endYear.Value)}
	if maxSpan > 0 && r.Span() > maxSpan {
		return nil, false, apperrors.InvalidField("end_year",
			fmt.Sprintf("range covers %d years, at most %d allowed", r.Span(), maxSpan))
	}
	return r, false, nil
}

func checkYear(field string, v int64) error {
	if v < MinYear || v > MaxYear {
		return apperrors.InvalidField(field,
			fmt.Sprintf("must be between %d and %d, got %d", MinYear, MaxYear, v))
	}
	return nil
}

func errUnknownMode(mode Mode) error {
	return apperrors.New(apperrors.KindInternal, apperrors.CodeInternal,
		fmt.Sprintf("unsupported projection mode %T", mode))
}
