package history

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	fileExtension      = ".csv"
	fileDateLayout     = "20060102"
	EnrichedFileSuffix = "_indicators"
)

var rawFileNamePattern = regexp.MustCompile(
	`^([A-Z0-9]+)_([0-9]+[mhdw])_start\(([0-9]{8})\)_to_end\(([0-9]{8})\)\.csv$`,
)

// RawFileName names a raw series file after its symbol, interval and the
// observed open time range.
func RawFileName(series *Series) (string, error) {
	first, last, ok := series.OpenTimeRange()
	if !ok {
		return "", ErrNoCandles
	}

	return fmt.Sprintf(
		"%v_%v_start(%v)_to_end(%v)%v",
		series.Symbol,
		series.Interval,
		first.UTC().Format(fileDateLayout),
		last.UTC().Format(fileDateLayout),
		fileExtension,
	), nil
}

func EnrichedFileName(rawFileName string) string {
	return strings.TrimSuffix(rawFileName, fileExtension) +
		EnrichedFileSuffix +
		fileExtension
}

// ParseRawFileName recovers the symbol and interval from a name produced
// by RawFileName.
func ParseRawFileName(name string) (string, Interval, bool) {
	matches := rawFileNamePattern.FindStringSubmatch(name)
	if matches == nil {
		return "", "", false
	}

	interval, err := ParseInterval(matches[2])
	if err != nil {
		return "", "", false
	}

	return matches[1], interval, true
}
