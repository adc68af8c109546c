package inmem

import (
	"context"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/history"
	"sync"
)

// SeriesRepository keeps raw, enriched and archived series in memory,
// keyed by the file names the filesystem store would use.
type SeriesRepository struct {
	mutex    sync.RWMutex
	raw      map[string]*history.Series
	enriched map[string]*history.EnrichedSeries
	runs     []*history.FetchRun
}

func NewSeriesRepository() *SeriesRepository {
	return &SeriesRepository{
		raw:      make(map[string]*history.Series),
		enriched: make(map[string]*history.EnrichedSeries),
		runs:     make([]*history.FetchRun, 0),
	}
}

func (sr *SeriesRepository) WriteSeries(series *history.Series) (string, error) {
	name, err := history.RawFileName(series)
	if err != nil {
		return "", err
	}

	sr.mutex.Lock()
	defer sr.mutex.Unlock()

	sr.raw[name] = copySeries(series)

	return name, nil
}

func (sr *SeriesRepository) ReadSeries(name string) (*history.Series, error) {
	sr.mutex.RLock()
	defer sr.mutex.RUnlock()

	series, ok := sr.raw[name]
	if !ok {
		return nil, fmt.Errorf("%w: [%v]", history.ErrSeriesNotFound, name)
	}

	return copySeries(series), nil
}

func (sr *SeriesRepository) WriteEnrichedSeries(
	rawName string,
	series *history.EnrichedSeries,
) (string, error) {
	name := history.EnrichedFileName(rawName)

	sr.mutex.Lock()
	defer sr.mutex.Unlock()

	sr.enriched[name] = series

	return name, nil
}

func (sr *SeriesRepository) EnrichedSeries(name string) (*history.EnrichedSeries, bool) {
	sr.mutex.RLock()
	defer sr.mutex.RUnlock()

	series, ok := sr.enriched[name]
	return series, ok
}

func (sr *SeriesRepository) ArchiveSeries(
	_ context.Context,
	run *history.FetchRun,
	_ *history.Series,
) error {
	sr.mutex.Lock()
	defer sr.mutex.Unlock()

	sr.runs = append(sr.runs, run)

	return nil
}

func (sr *SeriesRepository) Runs() []*history.FetchRun {
	sr.mutex.RLock()
	defer sr.mutex.RUnlock()

	snapshot := make([]*history.FetchRun, len(sr.runs))
	copy(snapshot, sr.runs)

	return snapshot
}

func copySeries(series *history.Series) *history.Series {
	snapshot := *series
	snapshot.Candles = make([]*history.Candle, len(series.Candles))
	copy(snapshot.Candles, series.Candles)

	return &snapshot
}
