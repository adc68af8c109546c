package main

import (
	"fmt"
	"github.com/sherifabdlnaby/configuro"
)

// Config values can be set using either environment variables with `CONFIG_`
// prefix or config.yml file placed in working directory.
// See https://github.com/sherifabdlnaby/configuro.
type Config struct {
	Logging Logging
	Storage Storage
}

type Logging struct {
	Level  string
	Format string
}

type Storage struct {
	RawDir       string
	IndicatorDir string
}

func (s Storage) Validate() error {
	if len(s.RawDir) == 0 || len(s.IndicatorDir) == 0 {
		return fmt.Errorf("raw and indicator directories must not be empty")
	}

	if s.RawDir == s.IndicatorDir {
		return fmt.Errorf("indicator directory must differ from raw directory")
	}

	return nil
}

func readConfig() (*Config, error) {
	loader, err := configuro.NewConfig()
	if err != nil {
		return nil, err
	}

	// Default config values.
	config := &Config{
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Storage: Storage{
			RawDir:       "data/raw_candle",
			IndicatorDir: "data/indicator_candle",
		},
	}

	err = loader.Load(config)
	if err != nil {
		return nil, err
	}

	err = loader.Validate(config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
