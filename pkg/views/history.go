package views

import (
	"context"
	"fmt"
	"time"

	"geofeed/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HistoryRepoMongo keeps at most one view-history document per (viewer, post)
// pair, used only for the dedupe window.
type HistoryRepoMongo struct {
	collection common.CollectionHelper
}

func NewHistoryRepoMongo(client *mongo.Client, dbName string) *HistoryRepoMongo {
	return &HistoryRepoMongo{collection: &common.MongoCollection{Collection: client.Database(dbName).Collection("view_history")}}
}

type historyDoc struct {
	ID           string    `bson:"_id"`
	ViewerID     int64     `bson:"viewerID"`
	PostID       string    `bson:"postID"`
	LastViewedAt time.Time `bson:"lastViewedAt"`
}

func historyID(viewerID int64, postID string) string {
	return fmt.Sprintf("%d|%s", viewerID, postID)
}

// LastViewedAt returns when viewer last viewed the post. The second result is
// false when the pair has never been seen.
func (r *HistoryRepoMongo) LastViewedAt(ctx context.Context, viewerID int64, postID string) (time.Time, bool, error) {
	res := r.collection.FindOne(ctx, bson.M{"_id": historyID(viewerID, postID)})

	doc := &historyDoc{}
	err := res.Decode(doc)
	if err == mongo.ErrNoDocuments {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	return doc.LastViewedAt, true, nil
}

// Touch overwrites the pair's lastViewedAt, creating the document on first view.
func (r *HistoryRepoMongo) Touch(ctx context.Context, viewerID int64, postID string, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": historyID(viewerID, postID)},
		bson.D{
			{Key: "$set", Value: bson.M{"viewerID": viewerID, "postID": postID, "lastViewedAt": at}},
		},
		options.Update().SetUpsert(true))

	return err
}
