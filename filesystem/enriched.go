package filesystem

import (
	"encoding/csv"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/history"
	"path/filepath"
	"strconv"
)

// WriteEnrichedSeries writes the raw columns followed by the indicator
// columns. Undefined indicator values are left as empty cells.
func (s *Store) WriteEnrichedSeries(
	rawName string,
	series *history.EnrichedSeries,
) (string, error) {
	path := filepath.Join(
		s.indicatorDir,
		history.EnrichedFileName(filepath.Base(rawName)),
	)

	err := writeAtomically(path, func(writer *csv.Writer) error {
		if err := writer.Write(series.ColumnNames()); err != nil {
			return err
		}

		for index, candle := range series.Candles {
			record := rawRecord(candle)

			for _, column := range series.Columns {
				record = append(record, formatIndicatorValue(column.Values[index]))
			}

			if err := writer.Write(record); err != nil {
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

func formatIndicatorValue(value history.IndicatorValue) string {
	if !value.Defined {
		return ""
	}

	return strconv.FormatFloat(value.Value, 'f', -1, 64)
}
