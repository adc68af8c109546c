package main

import (
	"fmt"
	"github.com/lukasz-zimnoch/dexly/history"
	"github.com/lukasz-zimnoch/dexly/history/filesystem"
	"github.com/lukasz-zimnoch/dexly/history/logrus"
	"github.com/lukasz-zimnoch/dexly/history/techan"
	"github.com/spf13/cobra"
	"io"
	"os"
	"strings"
)

func main() {
	command := &cobra.Command{
		Use:   "enricher <filename>",
		Short: "Add technical indicator columns to a raw candle CSV file",
		Long: `Enricher reads the named file from the raw directory, adds trend,
momentum, volume and volatility indicator columns and writes the result
into the indicator directory under the same name with an _indicators
suffix.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), args[0])
		},
	}

	if err := command.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(output io.Writer, name string) error {
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

	store := filesystem.NewStore(
		&filesystem.Config{
			RawDir:       config.Storage.RawDir,
			IndicatorDir: config.Storage.IndicatorDir,
		},
	)

	enricher := history.NewEnricher(
		logger,
		store,
		techan.NewCalculator(logger),
		store,
	)

	result, err := enricher.Enrich(name)
	if err != nil {
		logger.Errorf("enrichment failed: [%v]", err)
		return err
	}

	return printSummary(output, result)
}

func printSummary(output io.Writer, result *history.EnrichmentResult) error {
	_, err := fmt.Fprintf(
		output,
		"input:   %v\noutput:  %v\nrows:    %v\ncolumns: %v\nadded:   %v\n",
		result.Input,
		result.Output,
		result.Rows,
		len(result.Columns),
		strings.Join(result.AddedColumns, ", "),
	)

	return err
}
