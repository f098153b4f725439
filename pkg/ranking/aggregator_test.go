package ranking

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeHourlyData struct {
	// keyed day|hour
	active map[string][]string
	// keyed day|hour|cell
	counts    map[string]map[string]int64
	activeErr error
	countsErr error
}

func (f *fakeHourlyData) ActiveCells(ctx context.Context, day string, hour int) ([]string, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	return f.active[fmt.Sprintf("%s|%02d", day, hour)], nil
}

func (f *fakeHourlyData) Counts(ctx context.Context, day string, hour int, cell string) (map[string]int64, error) {
	if f.countsErr != nil {
		return nil, f.countsErr
	}
	c := f.counts[fmt.Sprintf("%s|%02d|%s", day, hour, cell)]
	if c == nil {
		return map[string]int64{}, nil
	}
	return c, nil
}

type fakeCacheSink struct {
	mu       sync.Mutex
	writes   [][]*CacheEntry
	writeErr error
}

func (f *fakeCacheSink) WriteSnapshot(ctx context.Context, entries []*CacheEntry) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, entries)
	return nil
}

var runTime = time.Date(2021, 6, 1, 15, 0, 0, 0, time.UTC)

func newTestAggregator(data *fakeHourlyData, sink *fakeCacheSink) *Aggregator {
	a := NewAggregator(data, data, sink, zap.NewNop().Sugar())
	a.Now = func() time.Time { return runTime }
	return a
}

func TestAggregateFoldsWindow(t *testing.T) {
	data := &fakeHourlyData{
		active: map[string][]string{
			"2021-06-01|09": {"wydm6"},
			"2021-06-01|12": {"wydm6", "wydm7"},
			"2021-06-01|14": {"wydm6"},
		},
		counts: map[string]map[string]int64{
			"2021-06-01|09|wydm6": {"p1": 2},
			"2021-06-01|12|wydm6": {"p1": 1, "p2": 5},
			"2021-06-01|12|wydm7": {"p3": 4},
			"2021-06-01|14|wydm6": {"p2": 1},
		},
	}
	sink := &fakeCacheSink{}
	a := newTestAggregator(data, sink)

	if err := a.AggregateLast6Hours(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.writes) != 1 {
		t.Fatalf("expected one batch write but was %d", len(sink.writes))
	}

	entries := sink.writes[0]
	if len(entries) != 2 {
		t.Fatalf("expected 2 cache entries but was %d", len(entries))
	}

	// entries are ordered by id, wydm6 before wydm7
	first := entries[0]
	if first.Cell != "wydm6" {
		t.Fatalf("expected cell wydm6 first but was %v", first.Cell)
	}
	expectedTop := []RankedPost{{PostID: "p2", Views: 6}, {PostID: "p1", Views: 3}}
	if !reflect.DeepEqual(first.Top, expectedTop) {
		t.Errorf("expected top %v but was %v", expectedTop, first.Top)
	}

	if first.SnapshotHour != 15 || first.FromHour != 9 || first.ToHour != 14 {
		t.Errorf("unexpected window: snapshot %d from %d to %d", first.SnapshotHour, first.FromHour, first.ToHour)
	}
	if first.ID != "2021-06-01|15|wydm6" {
		t.Errorf("unexpected entry id %v", first.ID)
	}

	second := entries[1]
	if second.Cell != "wydm7" || second.Top[0].PostID != "p3" || second.Top[0].Views != 4 {
		t.Errorf("unexpected second entry %+v", second)
	}
}

func TestAggregateTruncatesToTopK(t *testing.T) {
	counts := map[string]int64{}
	for i := 0; i < 25; i++ {
		counts[fmt.Sprintf("p%02d", i)] = int64(i + 1)
	}

	data := &fakeHourlyData{
		active: map[string][]string{"2021-06-01|14": {"wydm6"}},
		counts: map[string]map[string]int64{"2021-06-01|14|wydm6": counts},
	}
	sink := &fakeCacheSink{}
	a := newTestAggregator(data, sink)

	if err := a.AggregateLast6Hours(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	top := sink.writes[0][0].Top
	if len(top) != TopK {
		t.Fatalf("expected top truncated to %d but was %d", TopK, len(top))
	}
	if top[0].PostID != "p24" || top[0].Views != 25 {
		t.Errorf("unexpected leader %+v", top[0])
	}
	for i := 1; i < len(top); i++ {
		if top[i].Views > top[i-1].Views {
			t.Fatalf("top not sorted descending at %d", i)
		}
	}
}

func TestAggregateIdempotent(t *testing.T) {
	data := &fakeHourlyData{
		active: map[string][]string{"2021-06-01|13": {"wydm6"}},
		counts: map[string]map[string]int64{
			"2021-06-01|13|wydm6": {"p1": 3, "p2": 3, "p3": 1},
		},
	}
	sink := &fakeCacheSink{}
	a := newTestAggregator(data, sink)

	ctx := context.Background()
	if err := a.AggregateLast6Hours(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.AggregateLast6Hours(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.writes) != 2 {
		t.Fatalf("expected two runs but was %d", len(sink.writes))
	}
	if !reflect.DeepEqual(sink.writes[0], sink.writes[1]) {
		t.Errorf("re-run produced a different snapshot:\n%+v\n%+v", sink.writes[0], sink.writes[1])
	}

	// equal counts break ties on post id
	top := sink.writes[0][0].Top
	if top[0].PostID != "p1" || top[1].PostID != "p2" {
		t.Errorf("unexpected tie-break order %+v", top)
	}
}

func TestAggregateCrossesMidnight(t *testing.T) {
	data := &fakeHourlyData{
		active: map[string][]string{
			"2021-05-31|22": {"wydm6"},
			"2021-06-01|01": {"wydm6"},
		},
		counts: map[string]map[string]int64{
			"2021-05-31|22|wydm6": {"p1": 1},
			"2021-06-01|01|wydm6": {"p1": 2},
		},
	}
	sink := &fakeCacheSink{}
	a := newTestAggregator(data, sink)
	a.Now = func() time.Time { return time.Date(2021, 6, 1, 3, 0, 0, 0, time.UTC) }

	if err := a.AggregateLast6Hours(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := sink.writes[0]
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry but was %d", len(entries))
	}
	if entries[0].Top[0].Views != 3 {
		t.Errorf("expected views summed across midnight to 3 but was %d", entries[0].Top[0].Views)
	}
	if entries[0].FromHour != 21 || entries[0].ToHour != 2 {
		t.Errorf("unexpected window from %d to %d", entries[0].FromHour, entries[0].ToHour)
	}
}

func TestAggregateNothingActive(t *testing.T) {
	sink := &fakeCacheSink{}
	a := newTestAggregator(&fakeHourlyData{}, sink)

	if err := a.AggregateLast6Hours(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.writes) != 0 {
		t.Errorf("expected no snapshot write but was %d", len(sink.writes))
	}
}

func TestAggregateAbortsOnReadFailure(t *testing.T) {
	readErr := errors.New("store unavailable")
	sink := &fakeCacheSink{}
	a := newTestAggregator(&fakeHourlyData{activeErr: readErr}, sink)

	if err := a.AggregateLast6Hours(context.Background()); err != readErr {
		t.Fatalf("expected %v but was %v", readErr, err)
	}
	if len(sink.writes) != 0 {
		t.Errorf("expected no partial snapshot but was %d writes", len(sink.writes))
	}
}

func TestSnapshotHour(t *testing.T) {
	cases := map[int]int{0: 0, 1: 0, 2: 0, 3: 3, 5: 3, 14: 12, 15: 15, 23: 21}
	for hour, expected := range cases {
		at := time.Date(2021, 6, 1, hour, 30, 0, 0, time.UTC)
		if fact := SnapshotHour(at); fact != expected {
			t.Errorf("hour %d: expected %d but was %d", hour, expected, fact)
		}
	}
}

func TestAggregateMidPeriodAnchorsToBoundary(t *testing.T) {
	data := &fakeHourlyData{
		active: map[string][]string{"2021-06-01|14": {"wydm6"}},
		counts: map[string]map[string]int64{"2021-06-01|14|wydm6": {"p1": 3}},
	}
	sink := &fakeCacheSink{}
	a := newTestAggregator(data, sink)
	// late trigger inside the same period must write the same snapshot keys
	a.Now = func() time.Time { return time.Date(2021, 6, 1, 16, 30, 0, 0, time.UTC) }

	if err := a.AggregateLast6Hours(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.writes) != 1 || len(sink.writes[0]) != 1 {
		t.Fatalf("expected one entry but was %v", sink.writes)
	}

	entry := sink.writes[0][0]
	if entry.ID != "2021-06-01|15|wydm6" || entry.SnapshotHour != 15 {
		t.Errorf("unexpected snapshot key: id %v hour %d", entry.ID, entry.SnapshotHour)
	}
	if entry.FromHour != 9 || entry.ToHour != 14 {
		t.Errorf("unexpected window from %d to %d", entry.FromHour, entry.ToHour)
	}
}
