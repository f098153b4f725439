package views

import (
	"context"
	"sync"
	"time"

	"geofeed/pkg/geohash"
	"geofeed/pkg/posts"

	"go.uber.org/zap"
)

// DedupeWindow is how long repeated views by the same viewer on the same post
// are not re-counted.
const DedupeWindow = 5 * time.Minute

type Status string

const (
	StatusCounted Status = "SUCCESS"
	StatusIgnored Status = "IGNORED"
)

type PostSource interface {
	GetByID(ctx context.Context, id interface{}) (*posts.Post, error)
	ParseID(in string) (interface{}, error)
}

type HistoryRepo interface {
	LastViewedAt(ctx context.Context, viewerID int64, postID string) (time.Time, bool, error)
	Touch(ctx context.Context, viewerID int64, postID string, at time.Time) error
}

type CounterRepo interface {
	Increment(ctx context.Context, day string, hour int, cell string, postID string) error
}

type ActiveCellRepo interface {
	MarkActive(ctx context.Context, day string, hour int, cells []string) error
}

// Recorder fans a single accepted view out into the hourly counter of every
// precision level plus the active-cell index, then stamps the dedupe history.
// The writes are deliberately not one transaction: a crash mid-pipeline can
// increment counters without registering the dedupe timestamp, and a view
// after the window simply counts again. See the error handling notes in
// DESIGN.md.
type Recorder struct {
	Posts   PostSource
	History HistoryRepo
	Counter CounterRepo
	Active  ActiveCellRepo
	Logger  *zap.SugaredLogger

	// Now is swappable so the dedupe window is testable.
	Now func() time.Time
}

func NewRecorder(postsRepo PostSource, history HistoryRepo, counter CounterRepo, active ActiveCellRepo, logger *zap.SugaredLogger) *Recorder {
	return &Recorder{
		Posts:   postsRepo,
		History: history,
		Counter: counter,
		Active:  active,
		Logger:  logger,
		Now:     time.Now,
	}
}

// Record registers one view of postID by viewerID. A repeat view inside the
// dedupe window returns StatusIgnored without touching any counter.
func (rec *Recorder) Record(ctx context.Context, postID string, viewerID int64) (Status, error) {
	now := rec.Now().UTC()

	last, seen, err := rec.History.LastViewedAt(ctx, viewerID, postID)
	if err != nil {
		return "", err
	}
	if seen && now.Sub(last) < DedupeWindow {
		return StatusIgnored, nil
	}

	id, err := rec.Posts.ParseID(postID)
	if err != nil {
		// an unparseable id can never name a stored post
		return "", posts.ErrNotFound
	}

	post, err := rec.Posts.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	day := now.Format(DayFormat)
	hour := now.Hour()

	cells := make([]string, 0, geohash.MaxPrecision)
	for p := geohash.MinPrecision; p <= geohash.MaxPrecision; p++ {
		cells = append(cells, post.Cell(p))
	}

	// The per-precision increments are independent; issue them together but
	// attempt every one before deciding the call failed.
	errs := make([]error, len(cells))
	wg := &sync.WaitGroup{}
	for i, cell := range cells {
		wg.Add(1)
		go func(i int, cell string) {
			defer wg.Done()
			errs[i] = rec.Counter.Increment(ctx, day, hour, cell, postID)
		}(i, cell)
	}
	wg.Wait()

	for _, incErr := range errs {
		if incErr != nil {
			rec.Logger.Errorf("counter increment failed for post %s: %v", postID, incErr)
			return "", incErr
		}
	}

	if err := rec.Active.MarkActive(ctx, day, hour, cells); err != nil {
		rec.Logger.Errorf("active cell update failed for post %s: %v", postID, err)
		return "", err
	}

	// History is written last. If this write fails the counters above stay
	// incremented and an immediate retry over-counts; accepted trade-off.
	if err := rec.History.Touch(ctx, viewerID, postID, now); err != nil {
		rec.Logger.Errorf("view history write failed for post %s: %v", postID, err)
		return "", err
	}

	return StatusCounted, nil
}
