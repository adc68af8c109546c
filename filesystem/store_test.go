package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lukasz-zimnoch/dexly/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WriteSeries(t *testing.T) {
	store := newTestStore(t)
	series := testSeries(3)

	path, err := store.WriteSeries(series)
	require.NoError(t, err)

	assert.Equal(
		t,
		filepath.Join(store.rawDir, "BTCUSDT_1h_start(20200101)_to_end(20200101).csv"),
		path,
	)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(history.RawColumns(), ","), lines[0])
	assert.Equal(
		t,
		"1577836800000,100.5,101.5,99.5,100.5,10,1577840399999,1005,7,4,402,0,2020-01-01 00:00:00",
		lines[1],
	)

	entries, err := os.ReadDir(store.rawDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_WriteSeries_Empty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.WriteSeries(&history.Series{Symbol: "BTCUSDT", Interval: history.Interval1h})
	assert.True(t, errors.Is(err, history.ErrNoCandles))

	_, err = os.Stat(store.rawDir)
	assert.True(t, os.IsNotExist(err), "nothing must be written")
}

func TestStore_ReadSeries(t *testing.T) {
	store := newTestStore(t)
	written := testSeries(5)

	path, err := store.WriteSeries(written)
	require.NoError(t, err)

	read, err := store.ReadSeries(filepath.Base(path))
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", read.Symbol)
	assert.Equal(t, history.Interval1h, read.Interval)
	require.Equal(t, written.Len(), read.Len())

	for index, candle := range written.Candles {
		assert.True(t, candle.OpenTime.Equal(read.Candles[index].OpenTime))
		assert.True(t, candle.CloseTime.Equal(read.Candles[index].CloseTime))
		assert.Equal(t, candle.ClosePrice, read.Candles[index].ClosePrice)
		assert.Equal(t, candle.TradeCount, read.Candles[index].TradeCount)
		assert.Equal(t, candle.TakerBuyQuoteAssetVolume, read.Candles[index].TakerBuyQuoteAssetVolume)
	}
}

func TestStore_ReadSeries_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.ReadSeries("ETHUSDT_1d_start(20200101)_to_end(20200102).csv")
	assert.True(t, errors.Is(err, history.ErrSeriesNotFound))
}

func TestStore_ReadSeries_TimestampOnly(t *testing.T) {
	store := newTestStore(t)

	content := "timestamp,open,high,low,close,volume\n" +
		"2020-01-01 00:00:00,1,2,0.5,1.5,10\n" +
		"2020-01-01 01:00:00,1.5,2.5,1,2,11\n"
	writeRawFile(t, store, "custom.csv", content)

	series, err := store.ReadSeries("custom.csv")
	require.NoError(t, err)

	require.Equal(t, 2, series.Len())
	assert.True(t, series.Candles[1].OpenTime.Equal(
		time.Date(2020, 1, 1, 1, 0, 0, 0, time.UTC),
	))
	assert.Empty(t, series.Symbol)
}

func TestStore_ReadSeries_MalformedRow(t *testing.T) {
	store := newTestStore(t)

	content := strings.Join(history.RawColumns(), ",") + "\n" +
		"1577836800000,1,2,0.5,abc,10,1577840399999,1,1,1,1,0,2020-01-01 00:00:00\n"
	writeRawFile(t, store, "broken.csv", content)

	_, err := store.ReadSeries("broken.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, history.ErrMalformedRow))
}

func TestStore_WriteEnrichedSeries(t *testing.T) {
	store := newTestStore(t)
	series := testSeries(3)

	enriched := &history.EnrichedSeries{
		Series: series,
		Columns: []*history.IndicatorColumn{
			{
				Name:     "sma_2",
				Group:    history.TrendGroup,
				Lookback: 2,
				Values: []history.IndicatorValue{
					{},
					{Value: 101, Defined: true},
					{Value: 102.25, Defined: true},
				},
			},
		},
	}

	rawName := "BTCUSDT_1h_start(20200101)_to_end(20200101).csv"

	path, err := store.WriteEnrichedSeries(rawName, enriched)
	require.NoError(t, err)
	assert.Equal(
		t,
		filepath.Join(store.indicatorDir, "BTCUSDT_1h_start(20200101)_to_end(20200101)_indicators.csv"),
		path,
	)

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(first)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[0], ",timestamp,sma_2"))
	assert.True(t, strings.HasSuffix(lines[1], ",2020-01-01 00:00:00,"))
	assert.True(t, strings.HasSuffix(lines[3], ",102.25"))

	_, err = store.WriteEnrichedSeries(rawName, enriched)
	require.NoError(t, err)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func newTestStore(t *testing.T) *Store {
	root := t.TempDir()

	return NewStore(&Config{
		RawDir:       filepath.Join(root, "raw_candle"),
		IndicatorDir: filepath.Join(root, "indicator_candle"),
	})
}

func writeRawFile(t *testing.T, store *Store, name, content string) {
	require.NoError(t, os.MkdirAll(store.rawDir, directoryMode))
	require.NoError(t, os.WriteFile(filepath.Join(store.rawDir, name), []byte(content), 0644))
}

func testSeries(count int) *history.Series {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]*history.Candle, count)

	for i := range candles {
		openTime := start.Add(time.Duration(i) * time.Hour)

		candles[i] = &history.Candle{
			OpenTime:                 openTime,
			OpenPrice:                "100.5",
			MaxPrice:                 "101.5",
			MinPrice:                 "99.5",
			ClosePrice:               "100.5",
			Volume:                   "10",
			CloseTime:                openTime.Add(time.Hour - time.Millisecond),
			QuoteAssetVolume:         "1005",
			TradeCount:               uint(7 + i),
			TakerBuyBaseAssetVolume:  "4",
			TakerBuyQuoteAssetVolume: "402",
			Ignore:                   "0",
		}
	}

	return &history.Series{
		Symbol:   "BTCUSDT",
		Interval: history.Interval1h,
		Candles:  candles,
	}
}
