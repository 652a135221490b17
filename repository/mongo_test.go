package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/iitbhu2k25/DSS-Nextjs/models"
)

func TestCensusDocumentDecoding(t *testing.T) {
	doc, err := bson.Marshal(bson.M{
		"_id":              "980",
		"subdistrict_code": int64(980),
		"subdistrict_name": "Pindra",
		"population_1951":  int64(100),
		"population_1961":  int64(120),
		"population_1971":  int64(150),
		"population_1981":  int64(200),
		"population_1991":  int64(260),
		"population_2001":  int64(310),
		"population_2011":  int64(400),
	})
	require.NoError(t, err)

	var row models.SubdistrictCensusRow
	require.NoError(t, bson.Unmarshal(doc, &row))

	assert.Equal(t, int64(980), row.SubdistrictCode)
	assert.Equal(t, [7]int64{100, 120, 150, 200, 260, 310, 400}, row.Populations())
}

func TestCensusDocumentDecoding_Int32Fields(t *testing.T) {
	doc, err := bson.Marshal(bson.M{"subdistrict_code": int32(5), "population_2011": int32(42)})
	require.NoError(t, err)

	var row models.SubdistrictCensusRow
	require.NoError(t, bson.Unmarshal(doc, &row))

	assert.Equal(t, int64(5), row.SubdistrictCode)
	assert.Equal(t, int64(42), row.Population2011)
	assert.Zero(t, row.Population1951)
}

func TestCensusFilter(t *testing.T) {
	filter := censusFilter([]int64{980, 981})
	assert.Equal(t, bson.M{"subdistrict_code": bson.M{"$in": []int64{980, 981}}}, filter)
}
