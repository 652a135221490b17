package projection

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/iitbhu2k25/DSS-Nextjs/models"
)

// Result maps a village id to year labels and projected populations.
type Result map[string]map[string]int64

// GeometryResult maps a village id to year labels and the village geometry.
type GeometryResult map[string]map[string]json.RawMessage

// ProjectSingleYear projects every village to targetYear. A zero targetYear
// means no year was requested and yields an empty result without touching the
// census source.
func ProjectSingleYear(ctx context.Context, source CensusSource, baseYear, targetYear int,
	villages []models.Village, codes []int64) (Result, error) {
	if targetYear == 0 {
		return Result{}, nil
	}

	g, err := requireGrowth(ctx, source, codes)
	if err != nil {
		return nil, err
	}

	baseLabel := strconv.Itoa(baseYear)
	targetLabel := strconv.Itoa(targetYear)
	out := make(Result, len(villages))
	for _, v := range villages {
		out[v.ID] = map[string]int64{
			baseLabel:   v.Population,
			targetLabel: g.Project(v.Population, baseYear, targetYear),
		}
	}
	return out, nil
}

// ProjectRange projects every village to each year of [startYear, endYear].
// The base-year entry is the recorded value and is never recomputed; an empty
// range leaves only that entry.
func ProjectRange(ctx context.Context, source CensusSource, baseYear, startYear, endYear int,
	villages []models.Village, codes []int64) (Result, error) {
	g, err := requireGrowth(ctx, source, codes)
	if err != nil {
		return nil, err
	}

	baseLabel := strconv.Itoa(baseYear)
	out := make(Result, len(villages))
	for _, v := range villages {
		years := map[string]int64{baseLabel: v.Population}
		for year := startYear; year <= endYear; year++ {
			if year == baseYear {
				continue
			}
			years[strconv.Itoa(year)] = g.Project(v.Population, baseYear, year)
			if year == endYear {
				break // year++ would overflow at math.MaxInt
			}
		}
		out[v.ID] = years
	}
	return out, nil
}

// GeometrySingleYear echoes each village geometry under the base year and
// targetYear labels.
func GeometrySingleYear(baseYear, targetYear int, villages []models.GeometryVillage) GeometryResult {
	out := GeometryResult{}
	if targetYear == 0 {
		return out
	}
	for _, v := range villages {
		out[v.ID] = map[string]json.RawMessage{
			strconv.Itoa(baseYear):   v.Geometry,
			strconv.Itoa(targetYear): v.Geometry,
		}
	}
	return out
}

// GeometryRange echoes each village geometry under the base year and every
// year of [startYear, endYear].
func GeometryRange(baseYear, startYear, endYear int, villages []models.GeometryVillage) GeometryResult {
	out := make(GeometryResult, len(villages))
	for _, v := range villages {
		years := map[string]json.RawMessage{strconv.Itoa(baseYear): v.Geometry}
		for year := startYear; year <= endYear; year++ {
			years[strconv.Itoa(year)] = v.Geometry
			if year == endYear {
				break
			}
		}
		out[v.ID] = years
	}
	return out
}

// Project dispatches on the request mode.
func Project(ctx context.Context, source CensusSource, mode Mode,
	villages []models.Village, codes []int64) (Result, error) {
	switch m := mode.(type) {
	case SingleYear:
		return ProjectSingleYear(ctx, source, BaseYear, m.Year, villages, codes)
	case Range:
		return ProjectRange(ctx, source, BaseYear, m.Start, m.End, villages, codes)
	default:
		return nil, errUnknownMode(mode)
	}
}

// ProjectGeometry dispatches the geometry passthrough on the request mode.
func ProjectGeometry(mode Mode, villages []models.GeometryVillage) (GeometryResult, error) {
	switch m := mode.(type) {
	case SingleYear:
		return GeometrySingleYear(BaseYear, m.Year, villages), nil
	case Range:
		return GeometryRange(BaseYear, m.Start, m.End, villages), nil
	default:
		return nil, errUnknownMode(mode)
	}
}
