package history

import (
	"fmt"
)

type SeriesReader interface {
	ReadSeries(name string) (*Series, error)
}

type EnrichedSeriesWriter interface {
	WriteEnrichedSeries(rawName string, series *EnrichedSeries) (string, error)
}

type EnrichmentResult struct {
	Input        string
	Output       string
	Rows         int
	Columns      []string
	AddedColumns []string
}

func (er *EnrichmentResult) String() string {
	return fmt.Sprintf(
		"rows: %v, columns: %v, added: %v",
		er.Rows,
		len(er.Columns),
		er.AddedColumns,
	)
}

type Enricher struct {
	logger     Logger
	reader     SeriesReader
	calculator IndicatorCalculator
	writer     EnrichedSeriesWriter
}

func NewEnricher(
	logger Logger,
	reader SeriesReader,
	calculator IndicatorCalculator,
	writer EnrichedSeriesWriter,
) *Enricher {
	return &Enricher{
		logger:     logger,
		reader:     reader,
		calculator: calculator,
		writer:     writer,
	}
}

// Enrich reads the named raw series, adds the indicator columns and writes
// the result next to the other enriched series.
func (e *Enricher) Enrich(name string) (*EnrichmentResult, error) {
	enrichLogger := e.logger.WithField("input", name)

	series, err := e.reader.ReadSeries(name)
	if err != nil {
		return nil, fmt.Errorf("could not read series [%v]: [%w]", name, err)
	}

	enrichLogger.Infof("loaded [%v] candles", series.Len())

	columns, err := e.calculator.Calculate(series.Candles)
	if err != nil {
		return nil, fmt.Errorf(
			"could not calculate indicators for [%v]: [%w]",
			name,
			err,
		)
	}

	for _, column := range columns {
		if len(column.Values) != series.Len() {
			return nil, fmt.Errorf(
				"indicator [%v] has [%v] values for [%v] candles",
				column.Name,
				len(column.Values),
				series.Len(),
			)
		}

		enrichLogger.Debugf(
			"calculated %v indicator [%v]",
			column.Group,
			column.Name,
		)
	}

	enriched := &EnrichedSeries{
		Series:  series,
		Columns: columns,
	}

	output, err := e.writer.WriteEnrichedSeries(name, enriched)
	if err != nil {
		return nil, fmt.Errorf(
			"could not write enriched series [%v]: [%w]",
			name,
			err,
		)
	}

	enrichLogger.Infof("saved enriched series to [%v]", output)

	names := enriched.ColumnNames()

	return &EnrichmentResult{
		Input:        name,
		Output:       output,
		Rows:         series.Len(),
		Columns:      names,
		AddedColumns: AddedColumns(names),
	}, nil
}
