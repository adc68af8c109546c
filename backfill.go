package history

import (
	"context"
	"fmt"
	"time"
)

const StartTimeLayout = "2006-01-02 15:04:05"

type BackfillJob struct {
	Symbol    string
	Interval  Interval
	StartTime time.Time
}

func ParseBackfillJob(symbol, interval, startTime string) (*BackfillJob, error) {
	if len(symbol) == 0 {
		return nil, fmt.Errorf("symbol must not be empty")
	}

	parsedInterval, err := ParseInterval(interval)
	if err != nil {
		return nil, err
	}

	parsedStartTime, err := time.ParseInLocation(
		StartTimeLayout,
		startTime,
		time.UTC,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"could not parse start time [%v]: [%v]",
			startTime,
			err,
		)
	}

	return &BackfillJob{
		Symbol:    symbol,
		Interval:  parsedInterval,
		StartTime: parsedStartTime,
	}, nil
}

func (bj *BackfillJob) String() string {
	return fmt.Sprintf(
		"%v %v since %v",
		bj.Symbol,
		bj.Interval,
		bj.StartTime.UTC().Format(StartTimeLayout),
	)
}

type FetchRun struct {
	ID          ID
	Exchange    string
	Symbol      string
	Interval    Interval
	StartTime   time.Time
	EndTime     time.Time
	CandleCount int
	File        string
}

// SeriesWriter persists a raw series and returns the location it has been
// written to. Implementations must not leave partial output on failure.
type SeriesWriter interface {
	WriteSeries(series *Series) (string, error)
}

type SeriesArchive interface {
	ArchiveSeries(ctx context.Context, run *FetchRun, series *Series) error
}

type Backfiller struct {
	logger    Logger
	idService IDService
	exchange  string
	fetcher   *Fetcher
	writer    SeriesWriter
	archive   SeriesArchive
}

// NewBackfiller creates a job runner. The archive is optional.
func NewBackfiller(
	logger Logger,
	idService IDService,
	fetcher *Fetcher,
	writer SeriesWriter,
	archive SeriesArchive,
) *Backfiller {
	return &Backfiller{
		logger:    logger,
		idService: idService,
		exchange:  fetcher.exchange.ExchangeName(),
		fetcher:   fetcher,
		writer:    writer,
		archive:   archive,
	}
}

func (b *Backfiller) Run(ctx context.Context, job *BackfillJob) (*FetchRun, error) {
	run := &FetchRun{
		ID:        b.idService.NewID(),
		Exchange:  b.exchange,
		Symbol:    job.Symbol,
		Interval:  job.Interval,
		StartTime: job.StartTime,
	}

	runLogger := b.logger.WithFields(
		map[string]interface{}{
			"run":      run.ID.String(),
			"symbol":   job.Symbol,
			"interval": job.Interval.String(),
		},
	)

	runLogger.Infof("starting backfill of [%v]", job)

	series, err := b.fetcher.Fetch(ctx, job.Symbol, job.Interval, job.StartTime)
	if err != nil {
		return nil, fmt.Errorf("could not fetch [%v]: [%w]", job, err)
	}

	run.EndTime = series.To
	run.CandleCount = series.Len()

	file, err := b.writer.WriteSeries(series)
	if err != nil {
		return nil, fmt.Errorf("could not write series [%v]: [%w]", job, err)
	}

	run.File = file

	runLogger.Infof("saved [%v] candles to [%v]", run.CandleCount, file)

	if b.archive != nil {
		if err := b.archive.ArchiveSeries(ctx, run, series); err != nil {
			return nil, fmt.Errorf(
				"could not archive series [%v]: [%w]",
				job,
				err,
			)
		}

		runLogger.Infof("archived [%v] candles", run.CandleCount)
	}

	return run, nil
}

// RunAll runs the jobs one after another and stops at the first failure.
func (b *Backfiller) RunAll(
	ctx context.Context,
	jobs []*BackfillJob,
) ([]*FetchRun, error) {
	runs := make([]*FetchRun, 0, len(jobs))

	for _, job := range jobs {
		run, err := b.Run(ctx, job)
		if err != nil {
			return runs, err
		}

		runs = append(runs, run)
	}

	return runs, nil
}
