package history

// Raw series columns in file order. The exchange's twelve positional kline
// fields come first, followed by the open time rendered as a timestamp.
const (
	ColumnOpenTime                 = "open_time"
	ColumnOpen                     = "open"
	ColumnHigh                     = "high"
	ColumnLow                      = "low"
	ColumnClose                    = "close"
	ColumnVolume                   = "volume"
	ColumnCloseTime                = "close_time"
	ColumnQuoteAssetVolume         = "quote_asset_volume"
	ColumnNumberOfTrades           = "number_of_trades"
	ColumnTakerBuyBaseAssetVolume  = "taker_buy_base_asset_volume"
	ColumnTakerBuyQuoteAssetVolume = "taker_buy_quote_asset_volume"
	ColumnIgnore                   = "ignore"
	ColumnTimestamp                = "timestamp"
)

const TimestampLayout = "2006-01-02 15:04:05"

func RawColumns() []string {
	return []string{
		ColumnOpenTime,
		ColumnOpen,
		ColumnHigh,
		ColumnLow,
		ColumnClose,
		ColumnVolume,
		ColumnCloseTime,
		ColumnQuoteAssetVolume,
		ColumnNumberOfTrades,
		ColumnTakerBuyBaseAssetVolume,
		ColumnTakerBuyQuoteAssetVolume,
		ColumnIgnore,
		ColumnTimestamp,
	}
}

var priceColumns = map[string]bool{
	ColumnTimestamp: true,
	ColumnOpen:      true,
	ColumnHigh:      true,
	ColumnLow:       true,
	ColumnClose:     true,
	ColumnVolume:    true,
}

// AddedColumns lists every column except the timestamp and the OHLCV ones.
func AddedColumns(columns []string) []string {
	added := make([]string, 0, len(columns))

	for _, column := range columns {
		if !priceColumns[column] {
			added = append(added, column)
		}
	}

	return added
}
