package binance

import (
	"context"
	"fmt"
	"github.com/adshao/go-binance"
	"github.com/lukasz-zimnoch/dexly/history"
)

func (es *ExchangeService) Candles(
	ctx context.Context,
	filter *history.CandleFilter,
) ([]*history.Candle, error) {
	requestCtx := ctx
	if es.requestTimeout > 0 {
		var cancelRequestCtx context.CancelFunc
		requestCtx, cancelRequestCtx = context.WithTimeout(ctx, es.requestTimeout)
		defer cancelRequestCtx()
	}

	service := es.client.
		NewKlinesService().
		Symbol(filter.Symbol).
		Interval(filter.Interval.String()).
		StartTime(toMilliseconds(filter.StartTime)).
		EndTime(toMilliseconds(filter.EndTime))

	if filter.Limit > 0 {
		service = service.Limit(filter.Limit)
	}

	klines, err := service.Do(requestCtx)
	if err != nil {
		return nil, fmt.Errorf(
			"klines request for [%v] failed: [%w]",
			filter,
			err,
		)
	}

	candles := make([]*history.Candle, len(klines))
	for index := range candles {
		candles[index] = parseKline(klines[index])
	}

	return candles, nil
}

// go-binance drops the unused twelfth kline field, so Ignore stays empty.
func parseKline(kline *binance.Kline) *history.Candle {
	return &history.Candle{
		OpenTime:                 parseMilliseconds(kline.OpenTime),
		OpenPrice:                kline.Open,
		MaxPrice:                 kline.High,
		MinPrice:                 kline.Low,
		ClosePrice:               kline.Close,
		Volume:                   kline.Volume,
		CloseTime:                parseMilliseconds(kline.CloseTime),
		QuoteAssetVolume:         kline.QuoteAssetVolume,
		TradeCount:               uint(kline.TradeNum),
		TakerBuyBaseAssetVolume:  kline.TakerBuyBaseAssetVolume,
		TakerBuyQuoteAssetVolume: kline.TakerBuyQuoteAssetVolume,
	}
}
