package views

import (
	"context"
	"fmt"

	"geofeed/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DayFormat is the calendar key shared by counters, the active-cell index and
// the ranking cache. Always UTC.
const DayFormat = "2006-01-02"

// CounterRepoMongo stores one document per (day, hour, cell) holding a map of
// per-post view counts. Counts only ever grow; old buckets simply stop being
// read as the window moves on.
type CounterRepoMongo struct {
	collection common.CollectionHelper
}

func NewCounterRepoMongo(client *mongo.Client, dbName string) *CounterRepoMongo {
	return &CounterRepoMongo{collection: &common.MongoCollection{Collection: client.Database(dbName).Collection("hourly_counters")}}
}

type counterDoc struct {
	ID     string           `bson:"_id"`
	Day    string           `bson:"day"`
	Hour   int              `bson:"hour"`
	Cell   string           `bson:"cell"`
	Counts map[string]int64 `bson:"counts"`
}

func counterID(day string, hour int, cell string) string {
	return fmt.Sprintf("%s|%02d|%s", day, hour, cell)
}

// Increment atomically adds one view for postID in the cell's hourly bucket,
// creating the bucket on first use.
func (r *CounterRepoMongo) Increment(ctx context.Context, day string, hour int, cell string, postID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": counterID(day, hour, cell)},
		bson.D{
			{Key: "$inc", Value: bson.M{"counts." + postID: 1}},
			{Key: "$set", Value: bson.M{"day": day, "hour": hour, "cell": cell}},
		},
		options.Update().SetUpsert(true))

	return err
}

// Counts returns the per-post view counts of one hourly bucket. A bucket that
// was never written reads as empty, not as an error.
func (r *CounterRepoMongo) Counts(ctx context.Context, day string, hour int, cell string) (map[string]int64, error) {
	res := r.collection.FindOne(ctx, bson.M{"_id": counterID(day, hour, cell)})

	doc := &counterDoc{}
	err := res.Decode(doc)
	if err == mongo.ErrNoDocuments {
		return map[string]int64{}, nil
	}
	if err != nil {
		return nil, err
	}

	return doc.Counts, nil
}
