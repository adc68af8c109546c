package history

import (
	"context"
	"fmt"
	"time"
)

type Candle struct {
	OpenTime                 time.Time
	OpenPrice                string
	MaxPrice                 string
	MinPrice                 string
	ClosePrice               string
	Volume                   string
	CloseTime                time.Time
	QuoteAssetVolume         string
	TradeCount               uint
	TakerBuyBaseAssetVolume  string
	TakerBuyQuoteAssetVolume string
	Ignore                   string
}

func (c *Candle) String() string {
	return fmt.Sprintf(
		"time: %v, price: %v",
		c.OpenTime.UTC().Format(time.RFC3339),
		c.ClosePrice,
	)
}

type CandleFilter struct {
	Symbol    string
	Interval  Interval
	StartTime time.Time
	EndTime   time.Time
	Limit     int
}

func (cf *CandleFilter) String() string {
	return fmt.Sprintf(
		"%v %v [%v, %v)",
		cf.Symbol,
		cf.Interval,
		cf.StartTime.UTC().Format(time.RFC3339),
		cf.EndTime.UTC().Format(time.RFC3339),
	)
}

type ExchangeCandleService interface {
	ExchangeName() string

	Candles(ctx context.Context, filter *CandleFilter) ([]*Candle, error)
}
