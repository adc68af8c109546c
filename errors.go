package history

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownInterval = errors.New("unknown interval")

	ErrNoCandles = errors.New("no candles retrieved")

	ErrSeriesNotFound = errors.New("series file not found")

	ErrMalformedRow = errors.New("malformed row")
)

// RowError points at the offending cell of a malformed row.
type RowError struct {
	Row    int
	Column string
	Value  string
}

func (re *RowError) Error() string {
	return fmt.Sprintf(
		"%v: row [%v] column [%v] value [%v]",
		ErrMalformedRow,
		re.Row,
		re.Column,
		re.Value,
	)
}

func (re *RowError) Unwrap() error {
	return ErrMalformedRow
}
