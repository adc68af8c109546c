package techan

import (
	"fmt"
	"github.com/lukasz-zimnoch/dexly/history"
	"github.com/sdcoffey/techan"
)

const (
	macdShortWindow  = 12
	macdLongWindow   = 26
	macdSignalWindow = 9
	rsiWindow        = 14
	stochasticWindow = 14
	stochasticSmooth = 3
	bollingerWindow  = 20
	bollingerSigma   = 2
	atrWindow        = 14
)

type column struct {
	name      string
	group     history.IndicatorGroup
	lookback  int
	indicator techan.Indicator
}

type Calculator struct {
	logger history.Logger
}

func NewCalculator(logger history.Logger) *Calculator {
	return &Calculator{logger: logger}
}

// Calculate derives the fixed indicator set. Values before an indicator's
// lookback is satisfied are left undefined.
func (c *Calculator) Calculate(
	candles []*history.Candle,
) (result []*history.IndicatorColumn, err error) {
	for index, candle := range candles {
		if err := validateCandle(index, candle); err != nil {
			return nil, err
		}
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			result = nil
			err = fmt.Errorf("indicator calculation failed: [%v]", recovered)
		}
	}()

	series := toTimeSeries(candles)
	columns := indicatorColumns(series)

	result = make([]*history.IndicatorColumn, len(columns))

	for columnIndex, column := range columns {
		values := make([]history.IndicatorValue, len(candles))

		for index := column.lookback - 1; index < len(candles); index++ {
			values[index] = history.IndicatorValue{
				Value:   column.indicator.Calculate(index).Float(),
				Defined: true,
			}
		}

		c.logger.Debugf(
			"calculated indicator [%v] with lookback [%v]",
			column.name,
			column.lookback,
		)

		result[columnIndex] = &history.IndicatorColumn{
			Name:     column.name,
			Group:    column.group,
			Lookback: column.lookback,
			Values:   values,
		}
	}

	return result, nil
}

func indicatorColumns(series *techan.TimeSeries) []column {
	columns := make([]column, 0)
	columns = append(columns, trendColumns(series)...)
	columns = append(columns, momentumColumns(series)...)
	columns = append(columns, volumeColumns(series)...)
	columns = append(columns, volatilityColumns(series)...)
	return columns
}

func trendColumns(series *techan.TimeSeries) []column {
	price := techan.NewClosePriceIndicator(series)
	macd := techan.NewMACDIndicator(price, macdShortWindow, macdLongWindow)
	signalLookback := macdLongWindow + macdSignalWindow - 1

	return []column{
		{"sma_20", history.TrendGroup, 20, techan.NewSimpleMovingAverage(price, 20)},
		{"sma_50", history.TrendGroup, 50, techan.NewSimpleMovingAverage(price, 50)},
		{"sma_200", history.TrendGroup, 200, techan.NewSimpleMovingAverage(price, 200)},
		{"ema_20", history.TrendGroup, 20, techan.NewEMAIndicator(price, 20)},
		{"macd_line", history.TrendGroup, macdLongWindow, macd},
		{
			"macd_signal",
			history.TrendGroup,
			signalLookback,
			techan.NewEMAIndicator(macd, macdSignalWindow),
		},
		{
			"macd_histogram",
			history.TrendGroup,
			signalLookback,
			techan.NewMACDHistogramIndicator(macd, macdSignalWindow),
		},
	}
}

func momentumColumns(series *techan.TimeSeries) []column {
	price := techan.NewClosePriceIndicator(series)
	stochasticK := newStochasticKIndicator(series, stochasticWindow)

	return []column{
		{
			"rsi",
			history.MomentumGroup,
			rsiWindow + 1, // gains need a previous close
			techan.NewRelativeStrengthIndexIndicator(price, rsiWindow),
		},
		{"stoch_k", history.MomentumGroup, stochasticWindow, stochasticK},
		{
			"stoch_d",
			history.MomentumGroup,
			stochasticWindow + stochasticSmooth - 1,
			techan.NewSimpleMovingAverage(stochasticK, stochasticSmooth),
		},
	}
}

func volumeColumns(series *techan.TimeSeries) []column {
	return []column{
		{"obv", history.VolumeGroup, 1, newOnBalanceVolumeIndicator(series)},
		{"adi", history.VolumeGroup, 1, newAccumulationDistributionIndicator(series)},
	}
}

func volatilityColumns(series *techan.TimeSeries) []column {
	price := techan.NewClosePriceIndicator(series)

	return []column{
		{
			"bb_high",
			history.VolatilityGroup,
			bollingerWindow,
			techan.NewBollingerUpperBandIndicator(price, bollingerWindow, bollingerSigma),
		},
		{
			"bb_mid",
			history.VolatilityGroup,
			bollingerWindow,
			techan.NewSimpleMovingAverage(price, bollingerWindow),
		},
		{
			"bb_low",
			history.VolatilityGroup,
			bollingerWindow,
			techan.NewBollingerLowerBandIndicator(price, bollingerWindow, bollingerSigma),
		},
		{
			"atr",
			history.VolatilityGroup,
			atrWindow + 1, // true range needs a previous close
			techan.NewAverageTrueRangeIndicator(series, atrWindow),
		},
	}
}
