package techan

import (
	techanbig "github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

var hundred = techanbig.NewDecimal(100)

// onBalanceVolumeIndicator is the running volume total, adding volume
// unless the close price dropped below the previous close.
type onBalanceVolumeIndicator struct {
	series *techan.TimeSeries
	cache  *[]techanbig.Decimal
}

func newOnBalanceVolumeIndicator(series *techan.TimeSeries) techan.Indicator {
	return onBalanceVolumeIndicator{
		series: series,
		cache:  new([]techanbig.Decimal),
	}
}

func (obv onBalanceVolumeIndicator) Calculate(index int) techanbig.Decimal {
	for i := len(*obv.cache); i <= index; i++ {
		candle := obv.series.Candles[i]

		if i == 0 {
			*obv.cache = append(*obv.cache, candle.Volume)
			continue
		}

		previous := (*obv.cache)[i-1]
		previousClose := obv.series.Candles[i-1].ClosePrice

		if candle.ClosePrice.Cmp(previousClose) < 0 {
			*obv.cache = append(*obv.cache, previous.Sub(candle.Volume))
		} else {
			*obv.cache = append(*obv.cache, previous.Add(candle.Volume))
		}
	}

	return (*obv.cache)[index]
}

// accumulationDistributionIndicator accumulates the close location value
// weighted by volume. Candles with no price range contribute nothing.
type accumulationDistributionIndicator struct {
	series *techan.TimeSeries
	cache  *[]techanbig.Decimal
}

func newAccumulationDistributionIndicator(
	series *techan.TimeSeries,
) techan.Indicator {
	return accumulationDistributionIndicator{
		series: series,
		cache:  new([]techanbig.Decimal),
	}
}

func (adi accumulationDistributionIndicator) Calculate(
	index int,
) techanbig.Decimal {
	for i := len(*adi.cache); i <= index; i++ {
		candle := adi.series.Candles[i]

		moneyFlow := techanbig.ZERO
		priceRange := candle.MaxPrice.Sub(candle.MinPrice)

		if priceRange.Cmp(techanbig.ZERO) != 0 {
			closeLocation := candle.ClosePrice.Sub(candle.MinPrice).
				Sub(candle.MaxPrice.Sub(candle.ClosePrice)).
				Div(priceRange)

			moneyFlow = closeLocation.Mul(candle.Volume)
		}

		if i == 0 {
			*adi.cache = append(*adi.cache, moneyFlow)
			continue
		}

		*adi.cache = append(*adi.cache, (*adi.cache)[i-1].Add(moneyFlow))
	}

	return (*adi.cache)[index]
}

// stochasticKIndicator places the close within the high/low range of the
// trailing window. A flat range yields zero.
type stochasticKIndicator struct {
	closePrice techan.Indicator
	highest    techan.Indicator
	lowest     techan.Indicator
}

func newStochasticKIndicator(
	series *techan.TimeSeries,
	window int,
) techan.Indicator {
	return stochasticKIndicator{
		closePrice: techan.NewClosePriceIndicator(series),
		highest: techan.NewMaximumValueIndicator(
			techan.NewHighPriceIndicator(series),
			window,
		),
		lowest: techan.NewMinimumValueIndicator(
			techan.NewLowPriceIndicator(series),
			window,
		),
	}
}

func (sk stochasticKIndicator) Calculate(index int) techanbig.Decimal {
	lowest := sk.lowest.Calculate(index)
	priceRange := sk.highest.Calculate(index).Sub(lowest)

	if priceRange.Cmp(techanbig.ZERO) == 0 {
		return techanbig.ZERO
	}

	return sk.closePrice.Calculate(index).
		Sub(lowest).
		Div(priceRange).
		Mul(hundred)
}
