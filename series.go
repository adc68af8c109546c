package history

import (
	"time"
)

type Series struct {
	Symbol   string
	Interval Interval
	// From and To hold the requested range, not the observed one.
	From    time.Time
	To      time.Time
	Candles []*Candle
}

func (s *Series) Len() int {
	return len(s.Candles)
}

// OpenTimeRange returns the earliest and the latest observed open time.
func (s *Series) OpenTimeRange() (time.Time, time.Time, bool) {
	if len(s.Candles) == 0 {
		return time.Time{}, time.Time{}, false
	}

	min, max := s.Candles[0].OpenTime, s.Candles[0].OpenTime

	for _, candle := range s.Candles[1:] {
		if candle.OpenTime.Before(min) {
			min = candle.OpenTime
		}
		if candle.OpenTime.After(max) {
			max = candle.OpenTime
		}
	}

	return min, max, true
}
