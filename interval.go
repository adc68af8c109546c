package history

import (
	"fmt"
	"time"
)

type Interval string

const (
	Interval1m  Interval = "1m"
	Interval3m  Interval = "3m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval2h  Interval = "2h"
	Interval4h  Interval = "4h"
	Interval6h  Interval = "6h"
	Interval8h  Interval = "8h"
	Interval12h Interval = "12h"
	Interval1d  Interval = "1d"
	Interval3d  Interval = "3d"
	Interval1w  Interval = "1w"
)

var intervalDurations = map[Interval]time.Duration{
	Interval1m:  1 * time.Minute,
	Interval3m:  3 * time.Minute,
	Interval5m:  5 * time.Minute,
	Interval15m: 15 * time.Minute,
	Interval30m: 30 * time.Minute,
	Interval1h:  1 * time.Hour,
	Interval2h:  2 * time.Hour,
	Interval4h:  4 * time.Hour,
	Interval6h:  6 * time.Hour,
	Interval8h:  8 * time.Hour,
	Interval12h: 12 * time.Hour,
	Interval1d:  24 * time.Hour,
	Interval3d:  3 * 24 * time.Hour,
	Interval1w:  7 * 24 * time.Hour,
}

// ParseInterval accepts only intervals with a fixed duration, so the
// exchange's calendar month interval is rejected.
func ParseInterval(value string) (Interval, error) {
	interval := Interval(value)

	if _, ok := intervalDurations[interval]; !ok {
		return "", fmt.Errorf("%w: [%v]", ErrUnknownInterval, value)
	}

	return interval, nil
}

func (i Interval) Duration() time.Duration {
	return intervalDurations[i]
}

func (i Interval) String() string {
	return string(i)
}
