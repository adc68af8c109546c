package postgres

import (
	"context"
	"fmt"
	"github.com/jackc/pgtype"
	"github.com/lukasz-zimnoch/dexly/history"
	"time"
)

type CandleArchive struct {
	client *Client
}

func NewCandleArchive(client *Client) *CandleArchive {
	return &CandleArchive{client}
}

// ArchiveSeries records the run and upserts its candles in one
// transaction. Candles are keyed by exchange, symbol, interval and open
// time, so overlapping runs refresh existing rows.
func (ca *CandleArchive) ArchiveSeries(
	ctx context.Context,
	run *history.FetchRun,
	series *history.Series,
) error {
	transaction, err := ca.client.database.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: [%v]", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = transaction.Rollback()
		}
	}()

	runQuery := `INSERT INTO 
		fetch_run (id, exchange, symbol, candle_interval, start_time, end_time, candle_count, file) 
		VALUES (:id, :exchange, :symbol, :candle_interval, :start_time, :end_time, :candle_count, :file)`

	if _, err := transaction.NamedExecContext(ctx, runQuery, new(runRow).wrap(run)); err != nil {
		return fmt.Errorf(
			"could not execute command for run [%v]: [%v]",
			run.ID,
			err,
		)
	}

	candleQuery := `INSERT INTO 
		candle (exchange, symbol, candle_interval, open_time, close_time, open, high, low, close, 
			volume, quote_asset_volume, trade_count, taker_buy_base_asset_volume, 
			taker_buy_quote_asset_volume, run_id) 
		VALUES (:exchange, :symbol, :candle_interval, :open_time, :close_time, :open, :high, :low, :close, 
			:volume, :quote_asset_volume, :trade_count, :taker_buy_base_asset_volume, 
			:taker_buy_quote_asset_volume, :run_id)
		ON CONFLICT (exchange, symbol, candle_interval, open_time) DO UPDATE SET 
			close_time = EXCLUDED.close_time, open = EXCLUDED.open, high = EXCLUDED.high, 
			low = EXCLUDED.low, close = EXCLUDED.close, volume = EXCLUDED.volume, 
			quote_asset_volume = EXCLUDED.quote_asset_volume, trade_count = EXCLUDED.trade_count, 
			taker_buy_base_asset_volume = EXCLUDED.taker_buy_base_asset_volume, 
			taker_buy_quote_asset_volume = EXCLUDED.taker_buy_quote_asset_volume, 
			run_id = EXCLUDED.run_id`

	statement, err := transaction.PrepareNamedContext(ctx, candleQuery)
	if err != nil {
		return fmt.Errorf("could not prepare candle command: [%v]", err)
	}
	defer statement.Close()

	for _, candle := range series.Candles {
		row, err := new(candleRow).wrap(run, candle)
		if err != nil {
			return fmt.Errorf(
				"could not convert candle [%v] to pg row: [%v]",
				candle,
				err,
			)
		}

		if _, err := statement.ExecContext(ctx, row); err != nil {
			return fmt.Errorf(
				"could not execute command for candle [%v]: [%v]",
				candle,
				err,
			)
		}
	}

	if err := transaction.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: [%v]", err)
	}

	committed = true

	return nil
}

type runRow struct {
	ID          string
	Exchange    string
	Symbol      string
	Interval    string    `db:"candle_interval"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	CandleCount int       `db:"candle_count"`
	File        string
}

func (rr *runRow) wrap(run *history.FetchRun) *runRow {
	rr.ID = run.ID.String()
	rr.Exchange = run.Exchange
	rr.Symbol = run.Symbol
	rr.Interval = run.Interval.String()
	rr.StartTime = run.StartTime
	rr.EndTime = run.EndTime
	rr.CandleCount = run.CandleCount
	rr.File = run.File

	return rr
}

type candleRow struct {
	Exchange                 string
	Symbol                   string
	Interval                 string    `db:"candle_interval"`
	OpenTime                 time.Time `db:"open_time"`
	CloseTime                time.Time `db:"close_time"`
	Open                     pgtype.Numeric
	High                     pgtype.Numeric
	Low                      pgtype.Numeric
	Close                    pgtype.Numeric
	Volume                   pgtype.Numeric
	QuoteAssetVolume         pgtype.Numeric `db:"quote_asset_volume"`
	TradeCount               int64          `db:"trade_count"`
	TakerBuyBaseAssetVolume  pgtype.Numeric `db:"taker_buy_base_asset_volume"`
	TakerBuyQuoteAssetVolume pgtype.Numeric `db:"taker_buy_quote_asset_volume"`
	RunID                    string         `db:"run_id"`
}

func (cr *candleRow) wrap(
	run *history.FetchRun,
	candle *history.Candle,
) (*candleRow, error) {
	numerics := []struct {
		target *pgtype.Numeric
		value  string
	}{
		{&cr.Open, candle.OpenPrice},
		{&cr.High, candle.MaxPrice},
		{&cr.Low, candle.MinPrice},
		{&cr.Close, candle.ClosePrice},
		{&cr.Volume, candle.Volume},
		{&cr.QuoteAssetVolume, candle.QuoteAssetVolume},
		{&cr.TakerBuyBaseAssetVolume, candle.TakerBuyBaseAssetVolume},
		{&cr.TakerBuyQuoteAssetVolume, candle.TakerBuyQuoteAssetVolume},
	}

	for _, numeric := range numerics {
		value, err := textToNumeric(numeric.value)
		if err != nil {
			return nil, err
		}

		*numeric.target = value
	}

	cr.Exchange = run.Exchange
	cr.Symbol = run.Symbol
	cr.Interval = run.Interval.String()
	cr.OpenTime = candle.OpenTime
	cr.CloseTime = candle.CloseTime
	cr.TradeCount = int64(candle.TradeCount)
	cr.RunID = run.ID.String()

	return cr, nil
}
