package history

import (
	"context"
	"fmt"
	"time"
)

const DefaultRequestDelay = 100 * time.Millisecond

// CursorPolicy decides where the next request window starts once a window
// has been retrieved.
type CursorPolicy string

const (
	// WindowEndCursor always advances to the computed window end, even if
	// the exchange returned fewer rows than the window could hold.
	WindowEndCursor CursorPolicy = "window"
	// LastCandleCursor advances right past the close time of the last
	// received candle and falls back to the window end for empty batches.
	LastCandleCursor CursorPolicy = "candle"
)

func ParseCursorPolicy(value string) (CursorPolicy, error) {
	switch CursorPolicy(value) {
	case "", WindowEndCursor:
		return WindowEndCursor, nil
	case LastCandleCursor:
		return LastCandleCursor, nil
	}

	return "", fmt.Errorf("unknown cursor policy: [%v]", value)
}

type FetcherConfig struct {
	RequestDelay time.Duration
	Cursor       CursorPolicy
	Clock        func() time.Time
}

type Fetcher struct {
	logger       Logger
	exchange     ExchangeCandleService
	requestDelay time.Duration
	cursor       CursorPolicy
	clock        func() time.Time
}

func NewFetcher(
	logger Logger,
	exchange ExchangeCandleService,
	config *FetcherConfig,
) *Fetcher {
	fetcher := &Fetcher{
		logger:       logger,
		exchange:     exchange,
		requestDelay: DefaultRequestDelay,
		cursor:       WindowEndCursor,
		clock:        time.Now,
	}

	if config != nil {
		fetcher.requestDelay = config.RequestDelay
		if len(config.Cursor) > 0 {
			fetcher.cursor = config.Cursor
		}
		if config.Clock != nil {
			fetcher.clock = config.Clock
		}
	}

	return fetcher
}

// Fetch retrieves all candles of the given symbol and interval from start
// until now. Any failed request aborts the whole run and no partial series
// is returned.
func (f *Fetcher) Fetch(
	ctx context.Context,
	symbol string,
	interval Interval,
	start time.Time,
) (*Series, error) {
	if interval.Duration() <= 0 {
		return nil, fmt.Errorf("%w: [%v]", ErrUnknownInterval, interval)
	}

	fetchLogger := f.logger.WithFields(
		map[string]interface{}{
			"exchange": f.exchange.ExchangeName(),
			"symbol":   symbol,
			"interval": interval.String(),
		},
	)

	now := f.clock()
	candles := make([]*Candle, 0)

	for cursor := start; cursor.Before(now); {
		window := nextWindow(cursor, now, interval)

		filter := &CandleFilter{
			Symbol:    symbol,
			Interval:  interval,
			StartTime: window.Start,
			EndTime:   window.End,
			Limit:     WindowCandles,
		}

		batch, err := f.exchange.Candles(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf(
				"could not fetch candles for window %v: [%w]",
				window,
				err,
			)
		}

		candles = append(candles, batch...)

		if len(batch) == 0 {
			fetchLogger.Warningf("no candles for window %v", window)
		} else {
			fetchLogger.Infof(
				"retrieved [%v] candles for window %v",
				len(batch),
				window,
			)
		}

		cursor = f.advance(window, batch)

		if err := f.pause(ctx); err != nil {
			return nil, err
		}
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf(
			"%w: [%v %v since %v]",
			ErrNoCandles,
			symbol,
			interval,
			start.UTC().Format(time.RFC3339),
		)
	}

	return &Series{
		Symbol:   symbol,
		Interval: interval,
		From:     start,
		To:       now,
		Candles:  candles,
	}, nil
}

func (f *Fetcher) advance(window Window, batch []*Candle) time.Time {
	if f.cursor != LastCandleCursor || len(batch) == 0 {
		return window.End
	}

	next := batch[len(batch)-1].CloseTime.Add(time.Millisecond)
	if !next.After(window.Start) {
		return window.End
	}

	return next
}

func (f *Fetcher) pause(ctx context.Context) error {
	if f.requestDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(f.requestDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
