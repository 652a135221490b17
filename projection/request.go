package projection

import (
	"fmt"

	"github.com/iitbhu2k25/DSS-Nextjs/apperrors"
	"github.com/iitbhu2k25/DSS-Nextjs/models"
)

// Villages validates the posted village entries for a population projection.
func Villages(props []models.VillageProp) ([]models.Village, error) {
	if len(props) == 0 {
		return nil, apperrors.MissingField("villages_props")
	}
	out := make([]models.Village, 0, len(props))
	for i, p := range props {
		if !p.ID.Set {
			return nil, indexed(apperrors.MissingField("villages_props.id"), i)
		}
		if !p.Population.Set {
			return nil, indexed(apperrors.MissingField("villages_props.population"), i)
		}
		if p.Population.Value < 0 {
			return nil, indexed(apperrors.InvalidField("villages_props.population",
				fmt.Sprintf("must not be negative, got %d", p.Population.Value)), i)
		}
		out = append(out, models.Village{ID: p.ID.Value, Population: p.Population.Value})
	}
	return out, nil
}

// GeometryVillages validates the posted village entries for a geometry
// passthrough. The geometry itself is not inspected.
func GeometryVillages(props []models.VillageProp) ([]models.GeometryVillage, error) {
	if len(props) == 0 {
		return nil, apperrors.MissingField("villages_props")
	}
	out := make([]models.GeometryVillage, 0, len(props))
	for i, p := range props {
		if !p.ID.Set {
			return nil, indexed(apperrors.MissingField("villages_props.id"), i)
		}
		if len(p.Geometry) == 0 {
			return nil, indexed(apperrors.MissingField("villages_props.geometry"), i)
		}
		out = append(out, models.GeometryVillage{ID: p.ID.Value, Geometry: p.Geometry})
	}
	return out, nil
}

// SubdistrictCodes extracts the selected sub-district codes.
func SubdistrictCodes(props []models.SubdistrictProp) ([]int64, error) {
	codes := make([]int64, 0, len(props))
	for i, p := range props {
		if !p.ID.Set {
			return nil, indexed(apperrors.MissingField("subdistrict_props.id"), i)
		}
		codes = append(codes, p.ID.Value)
	}
	if len(codes) == 0 {
		return nil, apperrors.MissingField("subdistrict_props")
	}
	return codes, nil
}

// CheckBaseYear rejects a base year other than BaseYear. An absent base year
// is accepted.
func CheckBaseYear(baseYear models.FlexInt) error {
	if baseYear.Present() && baseYear.Value != BaseYear {
		return apperrors.InvalidField("base_year", fmt.Sprintf("must be %d", BaseYear))
	}
	return nil
}

func indexed(err *apperrors.Error, i int) *apperrors.Error {
	details := map[string]interface{}{"index": i}
	for k, v := range err.Details {
		details[k] = v
	}
	return err.WithDetails(details)
}
