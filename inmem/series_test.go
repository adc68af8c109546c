package inmem

import (
	"github.com/lukasz-zimnoch/dexly/history"
	"testing"
	"time"
)

func TestSeriesRepository_WriteSeries(t *testing.T) {
	repository := NewSeriesRepository()

	series := &history.Series{
		Symbol:   "BTCUSDT",
		Interval: history.Interval1m,
		Candles: []*history.Candle{
			candle(t, "2021-06-11T15:00:00Z", "2021-06-11T15:00:59Z"),
			candle(t, "2021-06-11T15:01:00Z", "2021-06-11T15:01:59Z"),
			candle(t, "2021-06-12T00:00:00Z", "2021-06-12T00:00:59Z"),
		},
	}

	name, err := repository.WriteSeries(series)
	if err != nil {
		t.Fatal(err)
	}

	expectedName := "BTCUSDT_1m_start(20210611)_to_end(20210612).csv"
	if name != expectedName {
		t.Errorf(
			"unexpected name\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			expectedName,
			name,
		)
	}

	// later changes of the caller's slice must not leak into the repository
	series.Candles[0] = candle(t, "2021-06-10T00:00:00Z", "2021-06-10T00:00:59Z")

	actualSeries, err := repository.ReadSeries(name)
	if err != nil {
		t.Fatal(err)
	}

	if actualSeries.Len() != 3 {
		t.Errorf(
			"unexpected candles count\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			3,
			actualSeries.Len(),
		)
	}

	assertCandlesEqual(
		t,
		candle(t, "2021-06-11T15:00:00Z", "2021-06-11T15:00:59Z"),
		actualSeries.Candles[0],
	)
	assertCandlesEqual(
		t,
		candle(t, "2021-06-12T00:00:00Z", "2021-06-12T00:00:59Z"),
		actualSeries.Candles[2],
	)
}

func assertCandlesEqual(
	t *testing.T,
	expected *history.Candle,
	actual *history.Candle,
) {
	if !expected.OpenTime.Equal(actual.OpenTime) ||
		!expected.CloseTime.Equal(actual.CloseTime) {
		t.Errorf(
			"unexpected candle\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			expected.String(),
			actual.String(),
		)
	}
}

func candle(t *testing.T, openTime, closeTime string) *history.Candle {
	return &history.Candle{
		OpenTime:  parseTime(t, openTime),
		CloseTime: parseTime(t, closeTime),
	}
}

func parseTime(t *testing.T, value string) time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatal(err)
	}

	return parsed
}
