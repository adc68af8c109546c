package binance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adshao/go-binance/common"
	"github.com/lukasz-zimnoch/dexly/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const klinesBody = `[
  [1577836800000,"7195.24000000","7196.25000000","7175.46000000","7177.02000000","511.81490100",1577840399999,"3675857.97",7640,"226.79430300","1628956.40","0"],
  [1577840400000,"7176.47000000","7230.00000000","7175.71000000","7216.27000000","883.05206300",1577843999999,"6365031.09",9033,"570.27679400","4110368.24","0"]
]`

func TestExchangeService_Candles(t *testing.T) {
	var query map[string]string
	var apiKeyHeader string

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v3/klines", r.URL.Path)

			query = map[string]string{
				"symbol":    r.URL.Query().Get("symbol"),
				"interval":  r.URL.Query().Get("interval"),
				"startTime": r.URL.Query().Get("startTime"),
				"endTime":   r.URL.Query().Get("endTime"),
				"limit":     r.URL.Query().Get("limit"),
			}
			apiKeyHeader = r.Header.Get("X-MBX-APIKEY")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(klinesBody))
		},
	))
	defer server.Close()

	service := NewExchangeService(&Config{
		ApiKey:         "secret-api-key",
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
	})

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	candles, err := service.Candles(context.Background(), &history.CandleFilter{
		Symbol:    "BTCUSDT",
		Interval:  history.Interval1h,
		StartTime: start,
		EndTime:   start.Add(500 * time.Hour),
		Limit:     history.WindowCandles,
	})
	require.NoError(t, err)

	assert.Equal(
		t,
		map[string]string{
			"symbol":    "BTCUSDT",
			"interval":  "1h",
			"startTime": "1577836800000",
			"endTime":   "1579636800000",
			"limit":     "500",
		},
		query,
	)
	assert.Empty(t, apiKeyHeader)

	require.Len(t, candles, 2)

	first := candles[0]
	assert.True(t, first.OpenTime.Equal(start))
	assert.True(t, first.CloseTime.Equal(start.Add(time.Hour-time.Millisecond)))
	assert.Equal(t, "7195.24000000", first.OpenPrice)
	assert.Equal(t, "7196.25000000", first.MaxPrice)
	assert.Equal(t, "7175.46000000", first.MinPrice)
	assert.Equal(t, "7177.02000000", first.ClosePrice)
	assert.Equal(t, "511.81490100", first.Volume)
	assert.Equal(t, "3675857.97", first.QuoteAssetVolume)
	assert.Equal(t, uint(7640), first.TradeCount)
	assert.Equal(t, "226.79430300", first.TakerBuyBaseAssetVolume)
	assert.Equal(t, "1628956.40", first.TakerBuyQuoteAssetVolume)

	assert.True(t, candles[1].OpenTime.Equal(start.Add(time.Hour)))
}

func TestExchangeService_Candles_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":-1003,"msg":"Too many requests."}`))
		},
	))
	defer server.Close()

	service := NewExchangeService(&Config{BaseURL: server.URL})

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	candles, err := service.Candles(context.Background(), &history.CandleFilter{
		Symbol:    "BTCUSDT",
		Interval:  history.Interval1h,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	require.Error(t, err)
	assert.Nil(t, candles)

	var apiErr *common.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, int64(-1003), apiErr.Code)
}

func TestExchangeService_Candles_MalformedRow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[[1577836800000,"7195.24"]]`))
		},
	))
	defer server.Close()

	service := NewExchangeService(&Config{BaseURL: server.URL})

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := service.Candles(context.Background(), &history.CandleFilter{
		Symbol:    "BTCUSDT",
		Interval:  history.Interval1h,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	assert.Error(t, err)
}
