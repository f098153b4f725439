package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"geofeed/pkg/feed"

	"go.uber.org/zap"
)

type FeedHandler struct {
	Feed      FeedService
	UsersRepo UsersRepo
	Logger    *zap.SugaredLogger
}

type FeedService interface {
	FetchLatest(ctx context.Context, lat, lng float64, precision int) ([]*feed.Entry, []string, error)
	FetchPopular(ctx context.Context, lat, lng float64, precision int) ([]*feed.Entry, []string, error)
}

type FeedResult struct {
	Posts []*PostResponse `json:"posts"`
	Cells []string        `json:"cells"`
}

type feedQuery struct {
	lat       float64
	lng       float64
	precision int
	feedType  string
}

func parseFeedQuery(r *http.Request) (*feedQuery, []*CustomError) {
	q := r.URL.Query()
	parsed := &feedQuery{}

	var latPtr, lngPtr *float64
	if raw := q.Get("lat"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, []*CustomError{{Location: "query", Param: "lat", Value: raw, Msg: "must be a number"}}
		}
		latPtr = &v
	}
	if raw := q.Get("lng"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, []*CustomError{{Location: "query", Param: "lng", Value: raw, Msg: "must be a number"}}
		}
		lngPtr = &v
	}

	lat := &FloatValidator{value: latPtr, location: "query", field: "lat"}
	latErr := func() *CustomError {
		err := lat.Required()
		if err != nil {
			return err
		}
		return lat.Range(-90, 90)
	}()

	lng := &FloatValidator{value: lngPtr, location: "query", field: "lng"}
	lngErr := func() *CustomError {
		err := lng.Required()
		if err != nil {
			return err
		}
		return lng.Range(-180, 180)
	}()

	var precErr *CustomError
	precision := 6
	if raw := q.Get("precision"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 10 {
			precErr = &CustomError{Location: "query", Param: "precision", Value: raw, Msg: "must be an integer between 1 and 10"}
		} else {
			precision = v
		}
	}

	var typeErr *CustomError
	feedType := q.Get("type")
	if feedType == "" {
		feedType = "latest"
	}
	if feedType != "latest" && feedType != "popular" {
		typeErr = &CustomError{Location: "query", Param: "type", Value: feedType, Msg: "must be latest or popular"}
	}

	errs := mergeErrors(latErr, lngErr, precErr, typeErr)
	if len(errs) > 0 {
		return nil, errs
	}

	parsed.lat = *latPtr
	parsed.lng = *lngPtr
	parsed.precision = precision
	parsed.feedType = feedType
	return parsed, nil
}

func (h *FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	q, validationErrors := parseFeedQuery(r)
	if len(validationErrors) > 0 {
		writeErrorsResponse(w, validationErrors, http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var entries []*feed.Entry
	var cells []string
	var err error
	if q.feedType == "popular" {
		entries, cells, err = h.Feed.FetchPopular(ctx, q.lat, q.lng, q.precision)
	} else {
		entries, cells, err = h.Feed.FetchLatest(ctx, q.lat, q.lng, q.precision)
	}
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	authors := map[int64]*Author{}
	result := &FeedResult{Posts: make([]*PostResponse, 0, len(entries)), Cells: cells}
	for _, e := range entries {
		author, ok := authors[e.Post.CreatorID]
		if !ok {
			u, err := h.UsersRepo.GetByID(e.Post.CreatorID)
			if err != nil {
				h.Logger.Error(err.Error())
				WriteError(w, "internal error", http.StatusInternalServerError)
				return
			}
			if u == nil {
				author = &Author{Username: "deleted", ID: e.Post.CreatorID}
			} else {
				author = &Author{Username: u.Username, ID: u.ID}
			}
			authors[e.Post.CreatorID] = author
		}

		resp := mapToPostResponse(e.Post, author)
		resp.Cell = e.Cell
		resp.Views = e.Views
		result.Posts = append(result.Posts, resp)
	}

	WriteResult(w, "SUCCESS", "", result, http.StatusOK)
}
