package models

// CensusYears are the decadal census years carried by every census row, oldest first.
var CensusYears = [7]int{1951, 1961, 1971, 1981, 1991, 2001, 2011}

// SubdistrictCensusRow holds the decadal population counts of one sub-district.
type SubdistrictCensusRow struct {
	SubdistrictCode int64 `json:"subdistrict_code" bson:"subdistrict_code"`
	Population1951  int64 `json:"population_1951" bson:"population_1951"`
	Population1961  int64 `json:"population_1961" bson:"population_1961"`
	Population1971  int64 `json:"population_1971" bson:"population_1971"`
	Population1981  int64 `json:"population_1981" bson:"population_1981"`
	Population1991  int64 `json:"population_1991" bson:"population_1991"`
	Population2001  int64 `json:"population_2001" bson:"population_2001"`
	Population2011  int64 `json:"population_2011" bson:"population_2011"`
}

// Populations returns the counts in CensusYears order.
func (r SubdistrictCensusRow) Populations() [7]int64 {
	return [7]int64{
		r.Population1951,
		r.Population1961,
		r.Population1971,
		r.Population1981,
		r.Population1991,
		r.Population2001,
		r.Population2011,
	}
}
