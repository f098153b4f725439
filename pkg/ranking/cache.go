package ranking

import (
	"context"
	"fmt"
	"time"

	"geofeed/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TopK is how many posts each cell's ranking keeps.
const TopK = 10

// RankedPost is one (post, view count) pair of a cell's ranking, sorted
// descending by views within the cell.
type RankedPost struct {
	PostID string `bson:"postID" json:"postID"`
	Views  int64  `bson:"views" json:"views"`
}

// CacheEntry is the materialized popularity list of one cell for one 6-hour
// snapshot. Written only by the aggregator, fully overwritten on each run.
type CacheEntry struct {
	ID           string       `bson:"_id"`
	Day          string       `bson:"day"`
	SnapshotHour int          `bson:"snapshotHour"`
	Cell         string       `bson:"cell"`
	Top          []RankedPost `bson:"top"`
	FromHour     int          `bson:"fromHour"`
	ToHour       int          `bson:"toHour"`
	UpdatedAt    time.Time    `bson:"updatedAt"`
}

// SnapshotHour floors t's UTC hour to the nearest lower multiple of the
// aggregation period, which is how readers find the current snapshot.
func SnapshotHour(t time.Time) int {
	return (t.UTC().Hour() / 3) * 3
}

func cacheID(day string, snapshotHour int, cell string) string {
	return fmt.Sprintf("%s|%02d|%s", day, snapshotHour, cell)
}

type CacheRepoMongo struct {
	collection common.CollectionHelper
}

func NewCacheRepoMongo(client *mongo.Client, dbName string) *CacheRepoMongo {
	return &CacheRepoMongo{collection: &common.MongoCollection{Collection: client.Database(dbName).Collection("ranking_cache")}}
}

// Top reads one cell's snapshot. A cell with no snapshot reads as nil so feed
// assembly can skip it.
func (r *CacheRepoMongo) Top(ctx context.Context, day string, snapshotHour int, cell string) (*CacheEntry, error) {
	res := r.collection.FindOne(ctx, bson.M{"_id": cacheID(day, snapshotHour, cell)})

	entry := &CacheEntry{}
	err := res.Decode(entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// WriteSnapshot commits every entry of one aggregator run as a single batch of
// replace-upserts, so readers never observe a half-updated snapshot.
func (r *CacheRepoMongo) WriteSnapshot(ctx context.Context, entries []*CacheEntry) error {
	if len(entries) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(entries))
	for _, e := range entries {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": e.ID}).
			SetReplacement(e).
			SetUpsert(true))
	}

	_, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	return err
}
