package projection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iitbhu2k25/DSS-Nextjs/apperrors"
	"github.com/iitbhu2k25/DSS-Nextjs/models"
)

func decodeRequest(t *testing.T, body string) models.ProjectionRequest {
	t.Helper()
	var req models.ProjectionRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestVillages(t *testing.T) {
	req := decodeRequest(t, `{"villages_props": [
		{"id": 101, "name": "Rampur", "subDistrictId": 5, "population": 40},
		{"id": "102", "population": "0"}
	]}`)

	got, err := Villages(req.Villages)

	require.NoError(t, err)
	assert.Equal(t, []models.Village{{ID: "101", Population: 40}, {ID: "102", Population: 0}}, got)
}

func TestVillages_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"no villages", `{}`, apperrors.CodeMissingField},
		{"missing id", `{"villages_props": [{"population": 4}]}`, apperrors.CodeMissingField},
		{"missing population", `{"villages_props": [{"id": 1}]}`, apperrors.CodeMissingField},
		{"empty population", `{"villages_props": [{"id": 1, "population": ""}]}`, apperrors.CodeMissingField},
		{"negative population", `{"villages_props": [{"id": 1, "population": -3}]}`, apperrors.CodeInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Villages(decodeRequest(t, tt.body).Villages)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
		})
	}
}

func TestVillages_ErrorCarriesIndex(t *testing.T) {
	req := decodeRequest(t, `{"villages_props": [{"id": 1, "population": 3}, {"id": 2}]}`)

	_, err := Villages(req.Villages)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 1, appErr.Details["index"])
	assert.Equal(t, []string{"villages_props.population"}, appErr.Details["fields"])
}

func TestGeometryVillages(t *testing.T) {
	req := decodeRequest(t, `{"villages_props": [{"id": 7, "geometry": {"type": "Point", "coordinates": [82.97, 25.31]}}]}`)

	got, err := GeometryVillages(req.Villages)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "7", got[0].ID)
	assert.JSONEq(t, `{"type": "Point", "coordinates": [82.97, 25.31]}`, string(got[0].Geometry))

	_, err = GeometryVillages(decodeRequest(t, `{"villages_props": [{"id": 7}]}`).Villages)
	assert.Equal(t, apperrors.CodeMissingField, apperrors.CodeOf(err))
}

func TestSubdistrictCodes(t *testing.T) {
	req := decodeRequest(t, `{"subdistrict_props": [{"id": 5, "name": "Pindra", "districtId": 2}, {"id": "9"}]}`)

	codes, err := SubdistrictCodes(req.Subdistricts)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 9}, codes)

	_, err = SubdistrictCodes(nil)
	assert.Equal(t, apperrors.CodeMissingField, apperrors.CodeOf(err))

	_, err = SubdistrictCodes(decodeRequest(t, `{"subdistrict_props": [{"name": "x"}]}`).Subdistricts)
	assert.Equal(t, apperrors.CodeMissingField, apperrors.CodeOf(err))
}

func TestCheckBaseYear(t *testing.T) {
	assert.NoError(t, CheckBaseYear(models.FlexInt{}))
	assert.NoError(t, CheckBaseYear(models.NewFlexInt(2011)))
	assert.Equal(t, apperrors.CodeInvalidField, apperrors.CodeOf(CheckBaseYear(models.NewFlexInt(2001))))
}
