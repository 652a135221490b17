package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// schema is valid for both postgres and sqlite.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS basic_state (
		state_code BIGINT PRIMARY KEY,
		state_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS basic_district (
		district_code BIGINT PRIMARY KEY,
		district_name TEXT NOT NULL,
		state_code BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS basic_subdistrict (
		subdistrict_code BIGINT PRIMARY KEY,
		subdistrict_name TEXT NOT NULL,
		district_code BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS basic_village (
		village_code BIGINT PRIMARY KEY,
		village_name TEXT NOT NULL,
		subdistrict_code BIGINT NOT NULL,
		population_2011 BIGINT
	)`,
	`CREATE TABLE IF NOT EXISTS population_2011 (
		subdistrict_code BIGINT PRIMARY KEY,
		population_1951 BIGINT,
		population_1961 BIGINT,
		population_1971 BIGINT,
		population_1981 BIGINT,
		population_1991 BIGINT,
		population_2001 BIGINT,
		population_2011 BIGINT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_basic_district_state ON basic_district (state_code)`,
	`CREATE INDEX IF NOT EXISTS idx_basic_subdistrict_district ON basic_subdistrict (district_code)`,
	`CREATE INDEX IF NOT EXISTS idx_basic_village_subdistrict ON basic_village (subdistrict_code)`,
}

// CreateSchema creates the census and geography tables and their lookup
// indexes when they do not exist yet.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	log.Info().Int("statements", len(schema)).Msg("schema ensured")
	return nil
}
