package views

import (
	"context"
	"fmt"

	"geofeed/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActiveCellRepoMongo records which cells saw at least one view during an
// hour, so the aggregator never has to enumerate the whole cell space.
type ActiveCellRepoMongo struct {
	collection common.CollectionHelper
}

func NewActiveCellRepoMongo(client *mongo.Client, dbName string) *ActiveCellRepoMongo {
	return &ActiveCellRepoMongo{collection: &common.MongoCollection{Collection: client.Database(dbName).Collection("active_cells")}}
}

type activeCellDoc struct {
	ID    string   `bson:"_id"`
	Day   string   `bson:"day"`
	Hour  int      `bson:"hour"`
	Cells []string `bson:"cells"`
}

func activeCellID(day string, hour int) string {
	return fmt.Sprintf("%s|%02d", day, hour)
}

// MarkActive adds cells to the hour's touched set. Re-adding a present cell is
// a no-op ($addToSet semantics).
func (r *ActiveCellRepoMongo) MarkActive(ctx context.Context, day string, hour int, cells []string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": activeCellID(day, hour)},
		bson.D{
			{Key: "$addToSet", Value: bson.M{"cells": bson.M{"$each": cells}}},
			{Key: "$set", Value: bson.M{"day": day, "hour": hour}},
		},
		options.Update().SetUpsert(true))

	return err
}

// ActiveCells returns the cells touched during the hour; nil when the hour saw
// no views at all.
func (r *ActiveCellRepoMongo) ActiveCells(ctx context.Context, day string, hour int) ([]string, error) {
	res := r.collection.FindOne(ctx, bson.M{"_id": activeCellID(day, hour)})

	doc := &activeCellDoc{}
	err := res.Decode(doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return doc.Cells, nil
}
