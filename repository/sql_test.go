package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iitbhu2k25/DSS-Nextjs/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "census.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, CreateSchema(context.Background(), db))
	seed(t, db)
	return db
}

func seed(t *testing.T, db *sql.DB) {
	t.Helper()
	stmts := []string{
		`INSERT INTO basic_state VALUES (9, 'Uttar Pradesh'), (10, 'Bihar')`,
		`INSERT INTO basic_district VALUES (187, 'Varanasi', 9), (180, 'Chandauli', 9), (230, 'Patna', 10)`,
		`INSERT INTO basic_subdistrict VALUES (980, 'Pindra', 187), (981, 'Varanasi', 187), (982, 'Chakia', 180)`,
		`INSERT INTO basic_village VALUES
			(208001, 'Rampur', 980, 1200),
			(208002, 'Babatpur', 980, 3400),
			(208003, 'Harhua', 981, NULL),
			(208004, 'Amra', 982, 800)`,
		`INSERT INTO population_2011 VALUES
			(980, 100, 120, 150, 200, 260, 310, 400),
			(981, 60, 70, NULL, 120, 160, 190, 250)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func TestSQLStore_SubdistrictCensus(t *testing.T) {
	store := NewSQLStore(openTestDB(t), 5*time.Second)

	rows, err := store.SubdistrictCensus(context.Background(), []int64{981, 980, 4242})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.SubdistrictCensusRow{
		SubdistrictCode: 980,
		Population1951:  100,
		Population1961:  120,
		Population1971:  150,
		Population1981:  200,
		Population1991:  260,
		Population2001:  310,
		Population2011:  400,
	}, rows[0])
	assert.Equal(t, int64(981), rows[1].SubdistrictCode)
	assert.Zero(t, rows[1].Population1971, "NULL counts read as zero")
}

func TestSQLStore_SubdistrictCensus_NoCodes(t *testing.T) {
	store := NewSQLStore(openTestDB(t), 0)

	rows, err := store.SubdistrictCensus(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSQLStore_States(t *testing.T) {
	store := NewSQLStore(openTestDB(t), time.Second)

	states, err := store.States(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.State{
		{StateCode: 10, StateName: "Bihar"},
		{StateCode: 9, StateName: "Uttar Pradesh"},
	}, states)
}

func TestSQLStore_Districts(t *testing.T) {
	store := NewSQLStore(openTestDB(t), time.Second)

	districts, err := store.Districts(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, []models.District{
		{DistrictCode: 180, DistrictName: "Chandauli", StateCode: 9},
		{DistrictCode: 187, DistrictName: "Varanasi", StateCode: 9},
	}, districts)

	none, err := store.Districts(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSQLStore_Subdistricts(t *testing.T) {
	store := NewSQLStore(openTestDB(t), time.Second)

	subdistricts, err := store.Subdistricts(context.Background(), []int64{187, 180})

	require.NoError(t, err)
	names := make([]string, len(subdistricts))
	for i, sd := range subdistricts {
		names[i] = sd.SubdistrictName
	}
	assert.Equal(t, []string{"Chakia", "Pindra", "Varanasi"}, names)
}

func TestSQLStore_Villages(t *testing.T) {
	store := NewSQLStore(openTestDB(t), time.Second)

	villages, err := store.Villages(context.Background(), []int64{980, 981})

	require.NoError(t, err)
	assert.Equal(t, []models.VillageRecord{
		{VillageCode: 208002, VillageName: "Babatpur", SubdistrictCode: 980, Population2011: 3400},
		{VillageCode: 208003, VillageName: "Harhua", SubdistrictCode: 981, Population2011: 0},
		{VillageCode: 208001, VillageName: "Rampur", SubdistrictCode: 980, Population2011: 1200},
	}, villages)

	empty, err := store.Villages(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSQLStore_PingAndTables(t *testing.T) {
	db := openTestDB(t)
	store := NewSQLStore(db, time.Second)

	require.NoError(t, store.Ping(context.Background()))
	assert.ElementsMatch(t, Tables, store.ExistingTables(context.Background()))

	_, err := db.Exec(`DROP TABLE basic_village`)
	require.NoError(t, err)
	assert.NotContains(t, store.ExistingTables(context.Background()), "basic_village")
}

func TestSQLStore_QueryFailure(t *testing.T) {
	db := openTestDB(t)
	store := NewSQLStore(db, time.Second)
	_, err := db.Exec(`DROP TABLE population_2011`)
	require.NoError(t, err)

	_, err = store.SubdistrictCensus(context.Background(), []int64{980})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "query census rows")
}

func TestInList(t *testing.T) {
	in, args := inList([]int64{4, 8, 15})
	assert.Equal(t, "$1, $2, $3", in)
	assert.Equal(t, []interface{}{int64(4), int64(8), int64(15)}, args)
}
