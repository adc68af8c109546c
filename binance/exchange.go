package binance

import (
	"github.com/adshao/go-binance"
	"time"
)

const (
	exchangeName = "binance"

	DefaultRequestTimeout = 1 * time.Minute
)

type Config struct {
	ApiKey string
	// BaseURL overrides the public endpoint, e.g. with one of the
	// api1..api4 mirrors.
	BaseURL        string
	RequestTimeout time.Duration
}

type ExchangeService struct {
	client         *binance.Client
	requestTimeout time.Duration
}

// NewExchangeService creates a market data client. Klines are public so
// the API key is never attached to any of the requests made here.
func NewExchangeService(config *Config) *ExchangeService {
	client := binance.NewClient(config.ApiKey, "")

	if len(config.BaseURL) > 0 {
		client.BaseURL = config.BaseURL
	}

	return &ExchangeService{
		client:         client,
		requestTimeout: config.RequestTimeout,
	}
}

func (es *ExchangeService) ExchangeName() string {
	return exchangeName
}

func parseMilliseconds(milliseconds int64) time.Time {
	return time.Unix(0, milliseconds*int64(time.Millisecond)).UTC()
}

func toMilliseconds(value time.Time) int64 {
	return value.UnixNano() / int64(time.Millisecond)
}
