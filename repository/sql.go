// Package repository reads census and geography data from the backing stores.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iitbhu2k25/DSS-Nextjs/models"
)

// Tables the service reads. Health checks probe each of them.
var Tables = []string{
	"basic_state",
	"basic_district",
	"basic_subdistrict",
	"basic_village",
	"population_2011",
}

// LocationStore answers the geography lookups behind the location endpoints.
type LocationStore interface {
	States(ctx context.Context) ([]models.State, error)
	Districts(ctx context.Context, stateCode int64) ([]models.District, error)
	Subdistricts(ctx context.Context, districtCodes []int64) ([]models.Subdistrict, error)
	Villages(ctx context.Context, subdistrictCodes []int64) ([]models.VillageRecord, error)
}

// SQLStore serves census rows and geography lookups from a database/sql
// handle opened with either the postgres or the sqlite3 driver. Queries use
// $n placeholders, which both drivers accept.
type SQLStore struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQLStore wraps db. A zero timeout leaves queries bounded only by the
// caller's context.
func NewSQLStore(db *sql.DB, timeout time.Duration) *SQLStore {
	return &SQLStore{db: db, timeout: timeout}
}

func (s *SQLStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// SubdistrictCensus returns the decadal totals for the given sub-district
// codes. Missing counts read as zero.
func (s *SQLStore) SubdistrictCensus(ctx context.Context, codes []int64) ([]models.SubdistrictCensusRow, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	in, args := inList(codes)
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			subdistrict_code,
			COALESCE(population_1951, 0),
			COALESCE(population_1961, 0),
			COALESCE(population_1971, 0),
			COALESCE(population_1981, 0),
			COALESCE(population_1991, 0),
			COALESCE(population_2001, 0),
			COALESCE(population_2011, 0)
		FROM population_2011
		WHERE subdistrict_code IN (`+in+`)
		ORDER BY subdistrict_code`, args...)
	if err != nil {
		return nil, fmt.Errorf("query census rows: %w", err)
	}
	defer rows.Close()

	var out []models.SubdistrictCensusRow
	for rows.Next() {
		var r models.SubdistrictCensusRow
		if err := rows.Scan(
			&r.SubdistrictCode,
			&r.Population1951,
			&r.Population1961,
			&r.Population1971,
			&r.Population1981,
			&r.Population1991,
			&r.Population2001,
			&r.Population2011,
		); err != nil {
			return nil, fmt.Errorf("scan census row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate census rows: %w", err)
	}
	log.Debug().Int("requested", len(codes)).Int("matched", len(out)).Msg("census rows loaded")
	return out, nil
}

func (s *SQLStore) States(ctx context.Context) ([]models.State, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT state_code, state_name
		FROM basic_state
		ORDER BY state_name`)
	if err != nil {
		return nil, fmt.Errorf("query states: %w", err)
	}
	defer rows.Close()

	states := []models.State{}
	for rows.Next() {
		var st models.State
		if err := rows.Scan(&st.StateCode, &st.StateName); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		states = append(states, st)
	}
	return states, rows.Err()
}

func (s *SQLStore) Districts(ctx context.Context, stateCode int64) ([]models.District, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT district_code, district_name, state_code
		FROM basic_district
		WHERE state_code = $1
		ORDER BY district_name`, stateCode)
	if err != nil {
		return nil, fmt.Errorf("query districts: %w", err)
	}
	defer rows.Close()

	districts := []models.District{}
	for rows.Next() {
		var d models.District
		if err := rows.Scan(&d.DistrictCode, &d.DistrictName, &d.StateCode); err != nil {
			return nil, fmt.Errorf("scan district: %w", err)
		}
		districts = append(districts, d)
	}
	return districts, rows.Err()
}

func (s *SQLStore) Subdistricts(ctx context.Context, districtCodes []int64) ([]models.Subdistrict, error) {
	subdistricts := []models.Subdistrict{}
	if len(districtCodes) == 0 {
		return subdistricts, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	in, args := inList(districtCodes)
	rows, err := s.db.QueryContext(ctx, `
		SELECT subdistrict_code, subdistrict_name, district_code
		FROM basic_subdistrict
		WHERE district_code IN (`+in+`)
		ORDER BY subdistrict_name`, args...)
	if err != nil {
		return nil, fmt.Errorf("query subdistricts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sd models.Subdistrict
		if err := rows.Scan(&sd.SubdistrictCode, &sd.SubdistrictName, &sd.DistrictCode); err != nil {
			return nil, fmt.Errorf("scan subdistrict: %w", err)
		}
		subdistricts = append(subdistricts, sd)
	}
	return subdistricts, rows.Err()
}

func (s *SQLStore) Villages(ctx context.Context, subdistrictCodes []int64) ([]models.VillageRecord, error) {
	villages := []models.VillageRecord{}
	if len(subdistrictCodes) == 0 {
		return villages, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	in, args := inList(subdistrictCodes)
	rows, err := s.db.QueryContext(ctx, `
		SELECT village_code, village_name, subdistrict_code, COALESCE(population_2011, 0)
		FROM basic_village
		WHERE subdistrict_code IN (`+in+`)
		ORDER BY village_name`, args...)
	if err != nil {
		return nil, fmt.Errorf("query villages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v models.VillageRecord
		if err := rows.Scan(&v.VillageCode, &v.VillageName, &v.SubdistrictCode, &v.Population2011); err != nil {
			return nil, fmt.Errorf("scan village: %w", err)
		}
		villages = append(villages, v)
	}
	return villages, rows.Err()
}

// Ping checks that the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

// ExistingTables reports which of Tables can be read. A probe query is used
// instead of information_schema so the check works on sqlite as well.
func (s *SQLStore) ExistingTables(ctx context.Context) []string {
	var existing []string
	for _, table := range Tables {
		qctx, cancel := s.withTimeout(ctx)
		var one int
		err := s.db.QueryRowContext(qctx, "SELECT 1 FROM "+table+" LIMIT 1").Scan(&one)
		cancel()
		if err == nil || errors.Is(err, sql.ErrNoRows) {
			existing = append(existing, table)
		}
	}
	return existing
}

// inList renders "$1, $2, ..." for codes along with the matching arguments.
func inList(codes []int64) (string, []interface{}) {
	placeholders := make([]string, len(codes))
	args := make([]interface{}, len(codes))
	for i, c := range codes {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = c
	}
	return strings.Join(placeholders, ", "), args
}
