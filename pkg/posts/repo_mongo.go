package posts

import (
	"context"
	"errors"
	"strconv"
	"time"

	"geofeed/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the fixed page length of the per-creator listing.
const PageSize = 20

var ErrNotFound = errors.New("post not found")

type PostsRepoMongo struct {
	collection common.CollectionHelper
}

func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	return mongo.Connect(ctx, options.Client().ApplyURI(uri))
}

func NewPostsRepoMongo(client *mongo.Client, dbName string) *PostsRepoMongo {
	return &PostsRepoMongo{collection: &common.MongoCollection{Collection: client.Database(dbName).Collection("posts")}}
}

func (r *PostsRepoMongo) Add(ctx context.Context, p *Post) (interface{}, error) {
	res, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}

	return res.GetInsertedID(), nil
}

func (r *PostsRepoMongo) GetByID(ctx context.Context, id interface{}) (*Post, error) {
	res := r.collection.FindOne(ctx, bson.M{"_id": id})

	post := &Post{}
	err := res.Decode(post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return post, nil
}

// LatestInCell returns the single most recently created post whose cell at the
// given precision equals cell, or ErrNotFound when the cell is empty.
func (r *PostsRepoMongo) LatestInCell(ctx context.Context, cell string, precision int) (*Post, error) {
	filter := bson.M{"cells." + strconv.Itoa(precision): cell}
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}}).SetLimit(1)

	found, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	if len(found) == 0 {
		return nil, ErrNotFound
	}

	return found[0], nil
}

// PageByCreator lists a creator's posts newest first, PageSize at a time. When
// before is set only posts created strictly earlier are returned, which is how
// the pagination cursor advances.
func (r *PostsRepoMongo) PageByCreator(ctx context.Context, creatorID int64, before *time.Time) ([]*Post, error) {
	filter := bson.M{"creatorID": creatorID}
	if before != nil {
		filter["created"] = bson.M{"$lt": *before}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}}).SetLimit(PageSize)

	return r.find(ctx, filter, opts)
}

func (r *PostsRepoMongo) Delete(ctx context.Context, id interface{}) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}

	if res.GetDeletedCount() == 0 {
		return false, nil
	}

	return true, nil
}

func (r *PostsRepoMongo) ParseID(in string) (interface{}, error) {
	return primitive.ObjectIDFromHex(in)
}

func (r *PostsRepoMongo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*Post, error) {
	cur, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}

	defer cur.Close(ctx)

	var found []*Post
	err = cur.All(ctx, &found)
	if err != nil {
		return nil, err
	}

	return found, nil
}
