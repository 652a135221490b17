// Package projection derives linear population projections for villages from
// the decadal census totals of their sub-districts.
//
// The annual growth rate is the floor of the mean decadal delta of the summed
// sub-district population divided by ten. Each village receives a share of that
// growth proportional to its part of the sub-districts' 2011 population.
package projection

import (
	"context"
	"math"
	"sort"

	"github.com/iitbhu2k25/DSS-Nextjs/apperrors"
	"github.com/iitbhu2k25/DSS-Nextjs/models"
)

// BaseYear is the census year every projection is offset from.
const BaseYear = 2011

// CensusSource returns the census rows for a set of sub-district codes.
// Codes that match nothing are simply absent from the result.
type CensusSource interface {
	SubdistrictCensus(ctx context.Context, codes []int64) ([]models.SubdistrictCensusRow, error)
}

// Growth is the outcome of the estimator: the annual absolute growth figure and
// the 2011 population it is distributed over.
type Growth struct {
	Rate      int64
	Total2011 int64
}

// GrowthFromRows sums every census column across rows, averages the six
// consecutive decadal deltas and floors a tenth of that mean.
func GrowthFromRows(rows []models.SubdistrictCensusRow) Growth {
	var totals [len(models.CensusYears)]int64
	for _, row := range rows {
		pops := row.Populations()
		for i := range totals {
			totals[i] += pops[i]
		}
	}

	deltas := make([]int64, 0, len(totals)-1)
	for i := 1; i < len(totals); i++ {
		deltas = append(deltas, totals[i]-totals[i-1])
	}

	var sum int64
	for _, d := range deltas {
		sum += d
	}
	mean := float64(sum) / float64(len(deltas))

	return Growth{
		Rate:      int64(math.Floor(mean / 10)),
		Total2011: totals[len(totals)-1],
	}
}

// EstimateGrowth reads the census rows for codes and reduces them with
// GrowthFromRows. An empty or unmatched code set yields a zero Growth and no
// error; callers that divide by Total2011 must check it.
func EstimateGrowth(ctx context.Context, source CensusSource, codes []int64) (Growth, error) {
	codes = uniqueCodes(codes)
	if len(codes) == 0 {
		return Growth{}, nil
	}

	rows, err := source.SubdistrictCensus(ctx, codes)
	if err != nil {
		return Growth{}, apperrors.Wrap(apperrors.KindInternal, apperrors.CodeDataSource,
			"failed to load sub-district census rows", err)
	}
	return GrowthFromRows(rows), nil
}

// requireGrowth is EstimateGrowth plus the zero-denominator guard.
func requireGrowth(ctx context.Context, source CensusSource, codes []int64) (Growth, error) {
	g, err := EstimateGrowth(ctx, source, codes)
	if err != nil {
		return Growth{}, err
	}
	if g.Total2011 == 0 {
		return Growth{}, apperrors.EmptyMatch(uniqueCodes(codes))
	}
	return g, nil
}

// Project returns the population of a village with the given 2011 value in year.
// The product rate*offset*share is added to the 2011 value in float64 and the
// sum is truncated toward zero.
func (g Growth) Project(population int64, baseYear, year int) int64 {
	share := float64(population) / float64(g.Total2011)
	offset := g.Rate * int64(year-baseYear)
	return int64(float64(population) + float64(offset)*share)
}

func uniqueCodes(codes []int64) []int64 {
	if len(codes) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(codes))
	out := make([]int64, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
