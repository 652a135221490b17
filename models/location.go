package models

type State struct {
	StateCode int64  `json:"state_code"`
	StateName string `json:"state_name"`
}

type District struct {
	DistrictCode int64  `json:"district_code"`
	DistrictName string `json:"district_name"`
	StateCode    int64  `json:"state_code"`
}

type Subdistrict struct {
	SubdistrictCode int64  `json:"subdistrict_code"`
	SubdistrictName string `json:"subdistrict_name"`
	DistrictCode    int64  `json:"district_code"`
}

type VillageRecord struct {
	VillageCode     int64  `json:"village_code"`
	VillageName     string `json:"village_name"`
	SubdistrictCode int64  `json:"subdistrict_code"`
	Population2011  int64  `json:"population_2011"`
}

type DistrictRequest struct {
	StateCode FlexInt `json:"state_code"`
}

type SubdistrictRequest struct {
	DistrictCodes FlexIntList `json:"district_code"`
}

type VillageRequest struct {
	SubdistrictCodes FlexIntList `json:"subdistrict_code"`
}
