package views

import (
	"context"
	"testing"
	"time"

	"geofeed/pkg/common"

	gomock "github.com/golang/mock/gomock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestHistoryLastViewedAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCollection := common.NewMockCollectionHelper(ctrl)
	mockSingle := common.NewMockSingleResultHelper(ctrl)
	repo := &HistoryRepoMongo{collection: mockCollection}

	ctx := context.Background()
	at := time.Date(2021, 6, 1, 14, 20, 0, 0, time.UTC)

	mockCollection.EXPECT().FindOne(ctx, gomock.Eq(bson.M{"_id": "42|abc"})).Return(mockSingle)
	mockSingle.EXPECT().Decode(gomock.AssignableToTypeOf(&historyDoc{})).
		DoAndReturn(func(v interface{}) error {
			*(v.(*historyDoc)) = historyDoc{ID: "42|abc", ViewerID: 42, PostID: "abc", LastViewedAt: at}
			return nil
		})

	last, seen, err := repo.LastViewedAt(ctx, 42, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seen {
		t.Fatal("expected the pair to be known")
	}
	if !last.Equal(at) {
		t.Errorf("expected %v but was %v", at, last)
	}
}

func TestHistoryLastViewedAtUnknownPair(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCollection := common.NewMockCollectionHelper(ctrl)
	mockSingle := common.NewMockSingleResultHelper(ctrl)
	repo := &HistoryRepoMongo{collection: mockCollection}

	ctx := context.Background()

	mockCollection.EXPECT().FindOne(ctx, gomock.Any()).Return(mockSingle)
	mockSingle.EXPECT().Decode(gomock.Any()).Return(mongo.ErrNoDocuments)

	_, seen, err := repo.LastViewedAt(ctx, 42, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen {
		t.Error("expected the pair to be unknown")
	}
}

func TestHistoryTouchUpserts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCollection := common.NewMockCollectionHelper(ctrl)
	mockUpdate := common.NewMockUpdateResultHelper(ctrl)
	repo := &HistoryRepoMongo{collection: mockCollection}

	ctx := context.Background()
	at := time.Date(2021, 6, 1, 14, 20, 0, 0, time.UTC)

	expectedUpdate := bson.D{
		{Key: "$set", Value: bson.M{"viewerID": int64(42), "postID": "abc", "lastViewedAt": at}},
	}

	mockCollection.EXPECT().
		UpdateOne(ctx, gomock.Eq(bson.M{"_id": "42|abc"}), gomock.Eq(expectedUpdate), gomock.Any()).
		Return(mockUpdate, nil)

	if err := repo.Touch(ctx, 42, "abc", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCounterIncrement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCollection := common.NewMockCollectionHelper(ctrl)
	mockUpdate := common.NewMockUpdateResultHelper(ctrl)
	repo := &CounterRepoMongo{collection: mockCollection}

	ctx := context.Background()

	expectedUpdate := bson.D{
		{Key: "$inc", Value: bson.M{"counts.abc": 1}},
		{Key: "$set", Value: bson.M{"day": "2021-06-01", "hour": 14, "cell": "wydm6"}},
	}

	mockCollection.EXPECT().
		UpdateOne(ctx, gomock.Eq(bson.M{"_id": "2021-06-01|14|wydm6"}), gomock.Eq(expectedUpdate), gomock.Any()).
		Return(mockUpdate, nil)

	if err := repo.Increment(ctx, "2021-06-01", 14, "wydm6", "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCounterCountsEmptyBucket(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCollection := common.NewMockCollectionHelper(ctrl)
	mockSingle := common.NewMockSingleResultHelper(ctrl)
	repo := &CounterRepoMongo{collection: mockCollection}

	ctx := context.Background()

	mockCollection.EXPECT().FindOne(ctx, gomock.Eq(bson.M{"_id": "2021-06-01|03|wydm6"})).Return(mockSingle)
	mockSingle.EXPECT().Decode(gomock.Any()).Return(mongo.ErrNoDocuments)

	counts, err := repo.Counts(ctx, "2021-06-01", 3, "wydm6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected empty counts but was %v", counts)
	}
}

func TestActiveCellsMarkAndRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCollection := common.NewMockCollectionHelper(ctrl)
	mockUpdate := common.NewMockUpdateResultHelper(ctrl)
	mockSingle := common.NewMockSingleResultHelper(ctrl)
	repo := &ActiveCellRepoMongo{collection: mockCollection}

	ctx := context.Background()
	cells := []string{"w", "wy", "wyd"}

	expectedUpdate := bson.D{
		{Key: "$addToSet", Value: bson.M{"cells": bson.M{"$each": cells}}},
		{Key: "$set", Value: bson.M{"day": "2021-06-01", "hour": 14}},
	}

	mockCollection.EXPECT().
		UpdateOne(ctx, gomock.Eq(bson.M{"_id": "2021-06-01|14"}), gomock.Eq(expectedUpdate), gomock.Any()).
		Return(mockUpdate, nil)

	if err := repo.MarkActive(ctx, "2021-06-01", 14, cells); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mockCollection.EXPECT().FindOne(ctx, gomock.Eq(bson.M{"_id": "2021-06-01|14"})).Return(mockSingle)
	mockSingle.EXPECT().Decode(gomock.AssignableToTypeOf(&activeCellDoc{})).
		DoAndReturn(func(v interface{}) error {
			*(v.(*activeCellDoc)) = activeCellDoc{ID: "2021-06-01|14", Day: "2021-06-01", Hour: 14, Cells: cells}
			return nil
		})

	read, err := repo.ActiveCells(ctx, "2021-06-01", 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(read) != len(cells) {
		t.Errorf("expected %d cells but was %d", len(cells), len(read))
	}
}
