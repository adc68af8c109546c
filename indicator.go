package history

type IndicatorGroup string

const (
	TrendGroup      IndicatorGroup = "trend"
	MomentumGroup   IndicatorGroup = "momentum"
	VolumeGroup     IndicatorGroup = "volume"
	VolatilityGroup IndicatorGroup = "volatility"
)

type IndicatorValue struct {
	Value   float64
	Defined bool
}

type IndicatorColumn struct {
	Name     string
	Group    IndicatorGroup
	Lookback int
	Values   []IndicatorValue
}

type EnrichedSeries struct {
	*Series
	Columns []*IndicatorColumn
}

func (es *EnrichedSeries) ColumnNames() []string {
	names := RawColumns()

	for _, column := range es.Columns {
		names = append(names, column.Name)
	}

	return names
}

// IndicatorCalculator derives indicator columns from an ordered candle
// sequence. Value at index i must depend on candles [0..i] only.
type IndicatorCalculator interface {
	Calculate(candles []*Candle) ([]*IndicatorColumn, error)
}
