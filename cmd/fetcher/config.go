package main

import (
	"fmt"
	"github.com/lukasz-zimnoch/dexly/history"
	"github.com/sherifabdlnaby/configuro"
	"os"
	"time"
)

const apiKeyEnv = "BINANCE_API_KEY"

// Config values can be set using either environment variables with `CONFIG_`
// prefix or config.yml file placed in working directory.
// See https://github.com/sherifabdlnaby/configuro.
type Config struct {
	Logging  Logging
	Binance  Binance
	Fetch    Fetch
	Storage  Storage
	Database Database
}

type Logging struct {
	Level  string
	Format string
}

type Binance struct {
	ApiKey         string
	BaseURL        string
	RequestTimeout time.Duration
}

type Fetch struct {
	RequestDelay time.Duration
	Cursor       string
	Jobs         []Job
}

func (f Fetch) Validate() error {
	if f.RequestDelay < 0 {
		return fmt.Errorf("request delay must not be negative")
	}

	if _, err := history.ParseCursorPolicy(f.Cursor); err != nil {
		return err
	}

	if len(f.Jobs) == 0 {
		return fmt.Errorf("at least one job must be configured")
	}

	for _, job := range f.Jobs {
		if err := job.Validate(); err != nil {
			return fmt.Errorf("invalid job [%+v]: [%v]", job, err)
		}
	}

	return nil
}

type Job struct {
	Symbol    string
	Interval  string
	StartTime string
}

func (j Job) Validate() error {
	_, err := history.ParseBackfillJob(j.Symbol, j.Interval, j.StartTime)
	return err
}

type Storage struct {
	RawDir       string
	IndicatorDir string
}

func (s Storage) Validate() error {
	if len(s.RawDir) == 0 {
		return fmt.Errorf("raw directory must not be empty")
	}

	return nil
}

// Database configures the optional postgres archive of fetched series.
type Database struct {
	Enabled      bool
	Address      string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MigrationDir string
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
		Binance: Binance{
			RequestTimeout: 1 * time.Minute,
		},
		Fetch: Fetch{
			RequestDelay: history.DefaultRequestDelay,
			Cursor:       string(history.WindowEndCursor),
			Jobs: []Job{
				{
					Symbol:    "BTCUSDT",
					Interval:  "1h",
					StartTime: "2017-08-17 00:00:00",
				},
			},
		},
		Storage: Storage{
			RawDir:       "data/raw_candle",
			IndicatorDir: "data/indicator_candle",
		},
		Database: Database{
			Address:      "localhost:5432",
			User:         "postgres",
			Password:     "postgres",
			Name:         "postgres",
			SSLMode:      "disable",
			MigrationDir: "postgres/migrations",
		},
	}

	err = loader.Load(config)
	if err != nil {
		return nil, err
	}

	if len(config.Binance.ApiKey) == 0 {
		config.Binance.ApiKey = os.Getenv(apiKeyEnv)
	}

	err = loader.Validate(config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) backfillJobs() ([]*history.BackfillJob, error) {
	jobs := make([]*history.BackfillJob, 0, len(c.Fetch.Jobs))

	for _, job := range c.Fetch.Jobs {
		backfillJob, err := history.ParseBackfillJob(
			job.Symbol,
			job.Interval,
			job.StartTime,
		)
		if err != nil {
			return nil, fmt.Errorf("invalid job [%+v]: [%v]", job, err)
		}

		jobs = append(jobs, backfillJob)
	}

	return jobs, nil
}
