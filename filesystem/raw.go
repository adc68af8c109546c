package filesystem

import (
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/history"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

func (s *Store) WriteSeries(series *history.Series) (string, error) {
	name, err := history.RawFileName(series)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.rawDir, name)

	err = writeAtomically(path, func(writer *csv.Writer) error {
		if err := writer.Write(history.RawColumns()); err != nil {
			return err
		}

		for _, candle := range series.Candles {
			if err := writer.Write(rawRecord(candle)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("could not write [%v]: [%v]", path, err)
	}

	return path, nil
}

func rawRecord(candle *history.Candle) []string {
	return []string{
		formatMilliseconds(candle.OpenTime),
		candle.OpenPrice,
		candle.MaxPrice,
		candle.MinPrice,
		candle.ClosePrice,
		candle.Volume,
		formatMilliseconds(candle.CloseTime),
		candle.QuoteAssetVolume,
		strconv.FormatUint(uint64(candle.TradeCount), 10),
		candle.TakerBuyBaseAssetVolume,
		candle.TakerBuyQuoteAssetVolume,
		candle.Ignore,
		candle.OpenTime.UTC().Format(history.TimestampLayout),
	}
}

// ReadSeries loads a raw series by file name, relative to the raw
// directory unless absolute. Files missing the open_time column but
// carrying a timestamp column are accepted as well.
func (s *Store) ReadSeries(name string) (*history.Series, error) {
	path := s.rawPath(name)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: [%v]", history.ErrSeriesNotFound, path)
		}

		return nil, fmt.Errorf("could not open [%v]: [%v]", path, err)
	}
	defer file.Close()

	candles, err := readCandles(file)
	if err != nil {
		return nil, fmt.Errorf("could not read [%v]: [%w]", path, err)
	}

	symbol, interval, _ := history.ParseRawFileName(filepath.Base(path))

	series := &history.Series{
		Symbol:   symbol,
		Interval: interval,
		Candles:  candles,
	}

	if first, last, ok := series.OpenTimeRange(); ok {
		series.From, series.To = first, last
	}

	return series, nil
}

func readCandles(input io.Reader) ([]*history.Candle, error) {
	reader := csv.NewReader(input)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read header: [%v]", err)
	}

	columns := make(map[string]int, len(header))
	for index, column := range header {
		columns[column] = index
	}

	for _, column := range []string{
		history.ColumnOpen,
		history.ColumnHigh,
		history.ColumnLow,
		history.ColumnClose,
		history.ColumnVolume,
	} {
		if _, ok := columns[column]; !ok {
			return nil, fmt.Errorf("missing column [%v]", column)
		}
	}

	_, hasOpenTime := columns[history.ColumnOpenTime]
	_, hasTimestamp := columns[history.ColumnTimestamp]
	if !hasOpenTime && !hasTimestamp {
		return nil, fmt.Errorf(
			"missing both [%v] and [%v] columns",
			history.ColumnOpenTime,
			history.ColumnTimestamp,
		)
	}

	candles := make([]*history.Candle, 0)

	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read row [%v]: [%v]", row, err)
		}

		candle, err := (&rowParser{row, record, columns}).candle()
		if err != nil {
			return nil, err
		}

		candles = append(candles, candle)
	}

	return candles, nil
}

type rowParser struct {
	row     int
	record  []string
	columns map[string]int
}

func (rp *rowParser) value(column string) (string, bool) {
	index, ok := rp.columns[column]
	if !ok || index >= len(rp.record) {
		return "", false
	}

	return rp.record[index], true
}

func (rp *rowParser) rowError(column, value string) error {
	return &history.RowError{Row: rp.row, Column: column, Value: value}
}

func (rp *rowParser) decimal(column string, required bool) (string, error) {
	value, ok := rp.value(column)
	if !ok || len(value) == 0 {
		if required {
			return "", rp.rowError(column, value)
		}
		return value, nil
	}

	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return "", rp.rowError(column, value)
	}

	return value, nil
}

func (rp *rowParser) milliseconds(column string) (time.Time, bool, error) {
	value, ok := rp.value(column)
	if !ok || len(value) == 0 {
		return time.Time{}, false, nil
	}

	milliseconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, false, rp.rowError(column, value)
	}

	return parseMilliseconds(milliseconds), true, nil
}

func (rp *rowParser) openTime() (time.Time, error) {
	openTime, ok, err := rp.milliseconds(history.ColumnOpenTime)
	if err != nil || ok {
		return openTime, err
	}

	value, _ := rp.value(history.ColumnTimestamp)

	openTime, err = time.ParseInLocation(history.TimestampLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, rp.rowError(history.ColumnTimestamp, value)
	}

	return openTime, nil
}

func (rp *rowParser) candle() (*history.Candle, error) {
	var err error
	candle := &history.Candle{}

	if candle.OpenTime, err = rp.openTime(); err != nil {
		return nil, err
	}

	if candle.CloseTime, _, err = rp.milliseconds(history.ColumnCloseTime); err != nil {
		return nil, err
	}

	required := []struct {
		column string
		target *string
	}{
		{history.ColumnOpen, &candle.OpenPrice},
		{history.ColumnHigh, &candle.MaxPrice},
		{history.ColumnLow, &candle.MinPrice},
		{history.ColumnClose, &candle.ClosePrice},
		{history.ColumnVolume, &candle.Volume},
	}
	for _, field := range required {
		if *field.target, err = rp.decimal(field.column, true); err != nil {
			return nil, err
		}
	}

	optional := []struct {
		column string
		target *string
	}{
		{history.ColumnQuoteAssetVolume, &candle.QuoteAssetVolume},
		{history.ColumnTakerBuyBaseAssetVolume, &candle.TakerBuyBaseAssetVolume},
		{history.ColumnTakerBuyQuoteAssetVolume, &candle.TakerBuyQuoteAssetVolume},
	}
	for _, field := range optional {
		if *field.target, err = rp.decimal(field.column, false); err != nil {
			return nil, err
		}
	}

	if trades, ok := rp.value(history.ColumnNumberOfTrades); ok && len(trades) > 0 {
		tradeCount, err := strconv.ParseUint(trades, 10, 64)
		if err != nil {
			return nil, rp.rowError(history.ColumnNumberOfTrades, trades)
		}
		candle.TradeCount = uint(tradeCount)
	}

	candle.Ignore, _ = rp.value(history.ColumnIgnore)

	return candle, nil
}

func formatMilliseconds(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return strconv.FormatInt(value.UnixNano()/int64(time.Millisecond), 10)
}

func parseMilliseconds(milliseconds int64) time.Time {
	return time.Unix(0, milliseconds*int64(time.Millisecond)).UTC()
}
