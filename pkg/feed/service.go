package feed

import (
	"context"
	"sync"
	"time"

	"geofeed/pkg/geohash"
	"geofeed/pkg/posts"
	"geofeed/pkg/ranking"
	"geofeed/pkg/views"

	"go.uber.org/zap"
)

// fanOutLimit bounds how many of the 15 per-cell lookups run at once.
const fanOutLimit = 8

type PostStore interface {
	GetByID(ctx context.Context, id interface{}) (*posts.Post, error)
	LatestInCell(ctx context.Context, cell string, precision int) (*posts.Post, error)
	PageByCreator(ctx context.Context, creatorID int64, before *time.Time) ([]*posts.Post, error)
	ParseID(in string) (interface{}, error)
}

type RankingCache interface {
	Top(ctx context.Context, day string, snapshotHour int, cell string) (*ranking.CacheEntry, error)
}

// Entry is one feed result: a post, the neighborhood cell it came from, and
// for the popular feed the view count that ranked it.
type Entry struct {
	Post  *posts.Post
	Cell  string
	Views int64
}

// Service answers the latest and popular feed queries by composing the
// spatial encoder, the post store and the ranking cache.
type Service struct {
	Posts  PostStore
	Cache  RankingCache
	Logger *zap.SugaredLogger

	Now func() time.Time
}

func NewService(postStore PostStore, cache RankingCache, logger *zap.SugaredLogger) *Service {
	return &Service{Posts: postStore, Cache: cache, Logger: logger, Now: time.Now}
}

// FetchLatest returns the most recent post of each of the 15 neighborhood
// cells around the coordinate, in fixed grid order. Cells without posts are
// skipped, so the result has at most one post per cell and at most 15 posts;
// it is not globally sorted by recency.
func (s *Service) FetchLatest(ctx context.Context, lat, lng float64, precision int) ([]*Entry, []string, error) {
	cells, err := geohash.Neighborhood(geohash.Encode(lat, lng, precision))
	if err != nil {
		return nil, nil, err
	}

	found := make([]*posts.Post, len(cells))
	var firstErr error
	var mu sync.Mutex

	sem := make(chan struct{}, fanOutLimit)
	wg := &sync.WaitGroup{}
	for i, cell := range cells {
		wg.Add(1)
		go func(i int, cell string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			p, err := s.Posts.LatestInCell(ctx, cell, precision)
			if err == posts.ErrNotFound {
				return
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			found[i] = p
		}(i, cell)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, nil, firstErr
	}

	entries := make([]*Entry, 0, len(cells))
	for i, p := range found {
		if p == nil {
			continue
		}
		entries = append(entries, &Entry{Post: p, Cell: cells[i]})
	}

	return entries, cells, nil
}

// FetchPopular returns the cached top-10 posts of each neighborhood cell for
// the current 6-hour snapshot, grouped by cell in grid order and sorted by
// view count within each cell. Cells without a snapshot are skipped, and a
// ranked post that no longer resolves is dropped rather than failing the
// request.
func (s *Service) FetchPopular(ctx context.Context, lat, lng float64, precision int) ([]*Entry, []string, error) {
	cells, err := geohash.Neighborhood(geohash.Encode(lat, lng, precision))
	if err != nil {
		return nil, nil, err
	}

	now := s.Now().UTC()
	day := now.Format(views.DayFormat)
	snapshotHour := ranking.SnapshotHour(now)

	cached := make([]*ranking.CacheEntry, len(cells))
	var firstErr error
	var mu sync.Mutex

	sem := make(chan struct{}, fanOutLimit)
	wg := &sync.WaitGroup{}
	for i, cell := range cells {
		wg.Add(1)
		go func(i int, cell string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			entry, err := s.Cache.Top(ctx, day, snapshotHour, cell)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			cached[i] = entry
		}(i, cell)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, nil, firstErr
	}

	var entries []*Entry
	for i, cacheEntry := range cached {
		if cacheEntry == nil {
			continue
		}
		for _, ranked := range cacheEntry.Top {
			id, err := s.Posts.ParseID(ranked.PostID)
			if err != nil {
				s.Logger.Warnf("skipping unparseable ranked post %q: %v", ranked.PostID, err)
				continue
			}
			post, err := s.Posts.GetByID(ctx, id)
			if err != nil {
				// deleted since the snapshot was built, or transiently unreadable
				s.Logger.Warnf("skipping unresolved ranked post %q: %v", ranked.PostID, err)
				continue
			}
			entries = append(entries, &Entry{Post: post, Cell: cells[i], Views: ranked.Views})
		}
	}

	return entries, cells, nil
}

// FetchUserPosts lists a creator's posts newest first, 20 per page. The next
// cursor is set from the last post of every non-empty page, even the final
// one; only an empty page reports NoMoreData.
func (s *Service) FetchUserPosts(ctx context.Context, creatorID int64, cursor string) ([]*posts.Post, string, error) {
	var before *time.Time
	if cursor != "" {
		at, err := DecodeCursor(cursor)
		if err != nil {
			return nil, "", err
		}
		before = &at
	}

	page, err := s.Posts.PageByCreator(ctx, creatorID, before)
	if err != nil {
		return nil, "", err
	}

	if len(page) == 0 {
		return []*posts.Post{}, NoMoreData, nil
	}

	return page, EncodeCursor(page[len(page)-1].Created), nil
}
