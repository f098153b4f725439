package ranking

import (
	"context"
	"sort"
	"time"

	"geofeed/pkg/views"

	"go.uber.org/zap"
)

// WindowHours is how far back each aggregation run reads.
const WindowHours = 6

type ActiveCellSource interface {
	ActiveCells(ctx context.Context, day string, hour int) ([]string, error)
}

type CounterSource interface {
	Counts(ctx context.Context, day string, hour int, cell string) (map[string]int64, error)
}

type CacheSink interface {
	WriteSnapshot(ctx context.Context, entries []*CacheEntry) error
}

// Aggregator folds the trailing six hours of per-cell counters into a top-K
// snapshot per cell. Runs are idempotent: the hourly counters it reads are
// immutable once their hour has passed, and the run overwrites the same cache
// keys, so a re-trigger for the same hour produces the same snapshot.
type Aggregator struct {
	Active  ActiveCellSource
	Counter CounterSource
	Cache   CacheSink
	Logger  *zap.SugaredLogger

	Now func() time.Time
}

func NewAggregator(active ActiveCellSource, counter CounterSource, cache CacheSink, logger *zap.SugaredLogger) *Aggregator {
	return &Aggregator{
		Active:  active,
		Counter: counter,
		Cache:   cache,
		Logger:  logger,
		Now:     time.Now,
	}
}

// AggregateLast6Hours computes and stores the snapshot for the current period.
// Any read or write failure aborts the whole run; the next scheduled run
// recomputes from the source counters.
func (a *Aggregator) AggregateLast6Hours(ctx context.Context) error {
	now := a.Now().UTC()
	snapshotHour := SnapshotHour(now)
	// anchor at the snapshot boundary so a run anywhere inside the same
	// period reads the same window and writes the same keys
	anchor := time.Date(now.Year(), now.Month(), now.Day(), snapshotHour, 0, 0, 0, time.UTC)
	day := anchor.Format(views.DayFormat)

	// cell -> post -> summed views over the window
	acc := map[string]map[string]int64{}

	for i := WindowHours; i >= 1; i-- {
		at := anchor.Add(-time.Duration(i) * time.Hour)
		hourDay := at.Format(views.DayFormat)
		hour := at.Hour()

		cells, err := a.Active.ActiveCells(ctx, hourDay, hour)
		if err != nil {
			a.Logger.Errorf("aggregation aborted, active cells read failed for %s %02d: %v", hourDay, hour, err)
			return err
		}
		if len(cells) == 0 {
			continue
		}

		for _, cell := range cells {
			counts, err := a.Counter.Counts(ctx, hourDay, hour, cell)
			if err != nil {
				a.Logger.Errorf("aggregation aborted, counter read failed for cell %s: %v", cell, err)
				return err
			}

			if acc[cell] == nil {
				acc[cell] = make(map[string]int64, len(counts))
			}
			for postID, n := range counts {
				acc[cell][postID] += n
			}
		}
	}

	entries := make([]*CacheEntry, 0, len(acc))
	for cell, perPost := range acc {
		entries = append(entries, &CacheEntry{
			ID:           cacheID(day, snapshotHour, cell),
			Day:          day,
			SnapshotHour: snapshotHour,
			Cell:         cell,
			Top:          topOf(perPost),
			FromHour:     (snapshotHour - WindowHours + 24) % 24,
			ToHour:       (snapshotHour - 1 + 24) % 24,
			UpdatedAt:    now,
		})
	}

	// stable entry order keeps re-runs byte-identical
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	if len(entries) == 0 {
		a.Logger.Infow("aggregation found no active cells", "day", day, "hour", snapshotHour)
		return nil
	}

	if err := a.Cache.WriteSnapshot(ctx, entries); err != nil {
		a.Logger.Errorf("aggregation aborted, snapshot write failed: %v", err)
		return err
	}

	a.Logger.Infow("ranking snapshot written", "day", day, "hour", snapshotHour, "cells", len(entries))
	return nil
}

// topOf sorts a cell's accumulated counts descending and truncates to TopK.
// Ties break on post id so the result is deterministic.
func topOf(perPost map[string]int64) []RankedPost {
	ranked := make([]RankedPost, 0, len(perPost))
	for postID, n := range perPost {
		ranked = append(ranked, RankedPost{PostID: postID, Views: n})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Views != ranked[j].Views {
			return ranked[i].Views > ranked[j].Views
		}
		return ranked[i].PostID < ranked[j].PostID
	})

	if len(ranked) > TopK {
		ranked = ranked[:TopK]
	}

	return ranked
}
