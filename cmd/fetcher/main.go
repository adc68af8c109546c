package main

import (
	"context"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/history"
	"github.com/lukasz-zimnoch/dexly/history/binance"
	"github.com/lukasz-zimnoch/dexly/history/filesystem"
	"github.com/lukasz-zimnoch/dexly/history/logrus"
	"github.com/lukasz-zimnoch/dexly/history/postgres"
	"github.com/lukasz-zimnoch/dexly/history/uuid"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	command := &cobra.Command{
		Use:   "fetcher",
		Short: "Backfill historical candles from Binance into raw CSV files",
		Long: `Fetcher walks every configured job from its start time until now
in windows of at most 500 candles and writes one raw CSV file per job.
Jobs are read from config.yml or CONFIG_ prefixed environment variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	if err := command.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	config, err := readConfig()
	if err != nil {
		return fmt.Errorf("could not read config: [%v]", err)
	}

	logger, err := logrus.NewLogger(
		config.Logging.Format,
		config.Logging.Level,
		os.Stdout,
	)
	if err != nil {
		return fmt.Errorf("could not create logger: [%v]", err)
	}

	jobs, err := config.backfillJobs()
	if err != nil {
		return err
	}

	cursor, err := history.ParseCursorPolicy(config.Fetch.Cursor)
	if err != nil {
		return err
	}

	exchangeService := binance.NewExchangeService(
		&binance.Config{
			ApiKey:         config.Binance.ApiKey,
			BaseURL:        config.Binance.BaseURL,
			RequestTimeout: config.Binance.RequestTimeout,
		},
	)

	fetcher := history.NewFetcher(
		logger,
		exchangeService,
		&history.FetcherConfig{
			RequestDelay: config.Fetch.RequestDelay,
			Cursor:       cursor,
		},
	)

	var archive history.SeriesArchive
	if config.Database.Enabled {
		client, err := connectPostgres(logger, &config.Database)
		if err != nil {
			return err
		}
		defer client.Close()

		archive = postgres.NewCandleArchive(client)
	}

	backfiller := history.NewBackfiller(
		logger,
		&uuid.IDService{},
		fetcher,
		filesystem.NewStore(
			&filesystem.Config{
				RawDir:       config.Storage.RawDir,
				IndicatorDir: config.Storage.IndicatorDir,
			},
		),
		archive,
	)

	runs, err := backfiller.RunAll(ctx, jobs)
	if err != nil {
		logger.Errorf("backfill failed: [%v]", err)
		return err
	}

	for _, run := range runs {
		logger.Infof(
			"run [%v] saved [%v] candles of [%v %v] to [%v]",
			run.ID,
			run.CandleCount,
			run.Symbol,
			run.Interval,
			run.File,
		)
	}

	return nil
}

func connectPostgres(
	logger history.Logger,
	config *Database,
) (*postgres.Client, error) {
	postgresConfig := &postgres.Config{
		Address:      config.Address,
		User:         config.User,
		Password:     config.Password,
		Name:         config.Name,
		SSLMode:      config.SSLMode,
		MigrationDir: config.MigrationDir,
	}

	if err := postgres.RunMigration(logger, postgresConfig); err != nil {
		return nil, fmt.Errorf(
			"could not run postgres migration: [%v]",
			err,
		)
	}

	client, err := postgres.NewClient(postgresConfig)
	if err != nil {
		return nil, fmt.Errorf(
			"could not create postgres client: [%v]",
			err,
		)
	}

	return client, nil
}
