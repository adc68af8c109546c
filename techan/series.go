package techan

import (
	"github.com/lukasz-zimnoch/dexly/history"
	techanbig "github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	"strconv"
)

// toTimeSeries keeps a one-to-one mapping between candles and series
// indexes. TimeSeries.AddCandle would drop candles overlapping the previous
// period, e.g. the boundary candle returned by two consecutive windows.
func toTimeSeries(candles []*history.Candle) *techan.TimeSeries {
	series := techan.NewTimeSeries()
	series.Candles = make([]*techan.Candle, 0, len(candles))

	for _, candle := range candles {
		series.Candles = append(series.Candles, toTechanCandle(candle))
	}

	return series
}

func toTechanCandle(candle *history.Candle) *techan.Candle {
	period := techan.TimePeriod{
		Start: candle.OpenTime,
		End:   candle.CloseTime,
	}

	techanCandle := techan.NewCandle(period)

	techanCandle.OpenPrice = techanbig.NewFromString(candle.OpenPrice)
	techanCandle.ClosePrice = techanbig.NewFromString(candle.ClosePrice)
	techanCandle.MaxPrice = techanbig.NewFromString(candle.MaxPrice)
	techanCandle.MinPrice = techanbig.NewFromString(candle.MinPrice)
	techanCandle.Volume = techanbig.NewFromString(candle.Volume)
	techanCandle.TradeCount = candle.TradeCount

	return techanCandle
}

func validateCandle(index int, candle *history.Candle) error {
	fields := []struct {
		column string
		value  string
	}{
		{history.ColumnOpen, candle.OpenPrice},
		{history.ColumnHigh, candle.MaxPrice},
		{history.ColumnLow, candle.MinPrice},
		{history.ColumnClose, candle.ClosePrice},
		{history.ColumnVolume, candle.Volume},
	}

	for _, field := range fields {
		if _, err := strconv.ParseFloat(field.value, 64); err != nil {
			return &history.RowError{
				Row:    index,
				Column: field.column,
				Value:  field.value,
			}
		}
	}

	return nil
}
