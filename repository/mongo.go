package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iitbhu2k25/DSS-Nextjs/models"
)

// CensusCollection holds one document per sub-district with the same field
// names as the population_2011 table.
const CensusCollection = "population_2011"

// MongoCensusSource reads sub-district census rows from MongoDB.
type MongoCensusSource struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoCensusSource(db *mongo.Database, timeout time.Duration) *MongoCensusSource {
	return &MongoCensusSource{coll: db.Collection(CensusCollection), timeout: timeout}
}

func (m *MongoCensusSource) SubdistrictCensus(ctx context.Context, codes []int64) ([]models.SubdistrictCensusRow, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	opts := options.Find().SetSort(bson.D{{Key: "subdistrict_code", Value: 1}})
	cursor, err := m.coll.Find(ctx, censusFilter(codes), opts)
	if err != nil {
		return nil, fmt.Errorf("find census documents: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.SubdistrictCensusRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode census documents: %w", err)
	}
	log.Debug().Int("requested", len(codes)).Int("matched", len(rows)).Msg("census documents loaded")
	return rows, nil
}

// EnsureIndexes creates the lookup index on subdistrict_code if it is missing.
func (m *MongoCensusSource) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subdistrict_code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("subdistrict_code_idx"),
	})
	if err != nil {
		return fmt.Errorf("error creating census indexes: %w", err)
	}
	log.Info().Str("collection", CensusCollection).Msg("census indexes ready")
	return nil
}

func censusFilter(codes []int64) bson.M {
	return bson.M{"subdistrict_code": bson.M{"$in": codes}}
}
