package main

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Roxrite0509/medguard/pkg/data"
	"github.com/Roxrite0509/medguard/pkg/qhi"
)

const (
	trainSplitDefault = 0.8
	runsLimitDefault  = 10
)

var (
	splitFlag = &cli.Float64Flag{
		Name:     "split",
		Usage:    "Fraction of samples used for training, the rest for testing",
		Value:    trainSplitDefault,
		Required: false,
	}

	saveFlag = &cli.BoolFlag{
		Name:     "save",
		Usage:    "Persist the run and its per-sample scores to the database",
		Required: false,
	}

	runsLimitFlag = &cli.IntFlag{
		Name:     "limit",
		Usage:    "Limits number of runs returned",
		Value:    runsLimitDefault,
		Required: false,
	}

	benchmarkCmd = &cli.Command{
		Name:    "benchmark",
		Aliases: []string{"b"},
		Usage:   "Train on a split, benchmark on the rest, and report the metrics",
		Action:  cmdBenchmark,
		Flags: []cli.Flag{
			sampleFileFlag,
			demoSizeFlag,
			seedFlag,
			splitFlag,
			saveFlag,
		},
	}

	runsCmd = &cli.Command{
		Name:    "runs",
		Aliases: []string{"r"},
		Usage:   "List persisted benchmark runs",
		Action:  cmdRuns,
		Flags: []cli.Flag{
			runsLimitFlag,
		},
	}
)

func cmdBenchmark(c *cli.Context) error {
	samples, err := loadSamples(c)
	if err != nil {
		return errors.Wrap(err, "failed to load samples")
	}

	split := c.Float64(splitFlag.Name)
	if split <= 0 || split >= 1 {
		return errors.Errorf("split must be in (0,1), got %v", split)
	}
	cut := int(float64(len(samples)) * split)
	trainSet, testSet := samples[:cut], samples[cut:]
	log.Infof("benchmarking: %d train, %d test samples", len(trainSet), len(testSet))

	sys := qhi.New(systemConfig(c))
	tm, err := sys.Train(trainSet)
	if err != nil {
		return errors.Wrap(err, "training failed")
	}
	fmt.Print(renderTrain(tm))

	bm, err := sys.Benchmark(testSet)
	if err != nil {
		return errors.Wrap(err, "benchmark failed")
	}
	fmt.Print(renderBenchmark(bm))

	if c.Bool(saveFlag.Name) {
		db := getDBOrFail()
		defer db.Close()

		id, err := data.SaveRun(db, bm, len(trainSet))
		if err != nil {
			return errors.Wrap(err, "failed to save run")
		}
		if err := data.SaveScores(db, id, testSet, sys.ScoreBatch(testSet)); err != nil {
			return errors.Wrap(err, "failed to save scores")
		}
		log.Infof("run saved: id=%d", id)
	}
	return nil
}

func cmdRuns(c *cli.Context) error {
	db := getDBOrFail()
	defer db.Close()

	runs, err := data.ListRuns(db, c.Int(runsLimitFlag.Name))
	if err != nil {
		return errors.Wrap(err, "failed to list runs")
	}

	fmt.Print(renderRuns(runs))
	return nil
}
