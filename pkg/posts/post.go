package posts

import (
	"strconv"
	"time"

	"geofeed/pkg/geohash"
)

type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Post is a user submission pinned to a coordinate. Cells holds the geohash of
// Location at every precision level, keyed by the level as a decimal string.
// Computed once on creation and never recomputed.
type Post struct {
	ID        interface{}       `bson:"_id,omitempty"`
	Title     string            `bson:"title"`
	Content   string            `bson:"content"`
	ImageURL  string            `bson:"imageURL"`
	CreatorID int64             `bson:"creatorID"`
	Created   time.Time         `bson:"created"`
	Location  Location          `bson:"location"`
	Cells     map[string]string `bson:"cells"`
}

func NewPost(title, content, imageURL string, creatorID int64, lat, lng float64, created time.Time) *Post {
	cells := make(map[string]string, geohash.MaxPrecision)
	for p := geohash.MinPrecision; p <= geohash.MaxPrecision; p++ {
		cells[strconv.Itoa(p)] = geohash.Encode(lat, lng, p)
	}

	return &Post{
		Title:     title,
		Content:   content,
		ImageURL:  imageURL,
		CreatorID: creatorID,
		Created:   created,
		Location:  Location{Lat: lat, Lng: lng},
		Cells:     cells,
	}
}

// Cell returns the precomputed cell identifier at the given precision level.
func (p *Post) Cell(precision int) string {
	return p.Cells[strconv.Itoa(precision)]
}
