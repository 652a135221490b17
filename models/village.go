package models

import "encoding/json"

// Village is a projection input: an id and its recorded 2011 population.
type Village struct {
	ID         string
	Population int64
}

// GeometryVillage carries an opaque geometry value that is echoed back untouched.
type GeometryVillage struct {
	ID       string
	Geometry json.RawMessage
}

// VillageProp is a village entry as the mapping client posts it.
type VillageProp struct {
	ID            FlexID          `json:"id"`
	Name          string          `json:"name,omitempty"`
	SubdistrictID FlexID          `json:"subDistrictId"`
	Population    FlexInt         `json:"population"`
	Geometry      json.RawMessage `json:"geometry,omitempty"`
}

// SubdistrictProp is a selected sub-district as the mapping client posts it.
type SubdistrictProp struct {
	ID         FlexInt `json:"id"`
	Name       string  `json:"name,omitempty"`
	DistrictID FlexInt `json:"districtId"`
}

// ProjectionRequest is the body of the time-series endpoints. Either Year or
// the StartYear/EndYear pair selects the projection mode.
type ProjectionRequest struct {
	BaseYear        FlexInt           `json:"base_year"`
	Year            FlexInt           `json:"year"`
	StartYear       FlexInt           `json:"start_year"`
	EndYear         FlexInt           `json:"end_year"`
	Villages        []VillageProp     `json:"villages_props"`
	Subdistricts    []SubdistrictProp `json:"subdistrict_props"`
	TotalPopulation json.RawMessage   `json:"totalPopulation_props,omitempty"`
}
