package main

import (
	"testing"
)

func TestStorage_Validate(t *testing.T) {
	tests := map[string]struct {
		storage Storage
		valid   bool
	}{
		"separate directories": {
			storage: Storage{RawDir: "data/raw_candle", IndicatorDir: "data/indicator_candle"},
			valid:   true,
		},
		"same directory": {
			storage: Storage{RawDir: "data", IndicatorDir: "data"},
		},
		"missing indicator directory": {
			storage: Storage{RawDir: "data/raw_candle"},
		},
	}

	for testName, test := range tests {
		t.Run(testName, func(t *testing.T) {
			err := test.storage.Validate()
			if test.valid != (err == nil) {
				t.Errorf(
					"unexpected validation result\n"+
						"expected valid: [%v]\n"+
						"actual error:   [%v]",
					test.valid,
					err,
				)
			}
		})
	}
}
