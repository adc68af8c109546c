package history

import (
	"fmt"
	"time"
)

// WindowCandles is the exchange-imposed row cap of a single klines call.
const WindowCandles = 500

type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) String() string {
	return fmt.Sprintf(
		"[%v, %v)",
		w.Start.UTC().Format(time.RFC3339),
		w.End.UTC().Format(time.RFC3339),
	)
}

// PlanWindows returns the contiguous request windows covering [start, now)
// assuming the cursor always advances to the window end.
func PlanWindows(start, now time.Time, interval Interval) []Window {
	windows := make([]Window, 0)

	if interval.Duration() <= 0 {
		return windows
	}

	for cursor := start; cursor.Before(now); {
		window := nextWindow(cursor, now, interval)
		windows = append(windows, window)
		cursor = window.End
	}

	return windows
}

func nextWindow(cursor, now time.Time, interval Interval) Window {
	end := cursor.Add(interval.Duration() * WindowCandles)
	if end.After(now) {
		end = now
	}

	return Window{Start: cursor, End: end}
}
