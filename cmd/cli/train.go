package main

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Roxrite0509/medguard/pkg/qhi"
)

var (
	trainCmd = &cli.Command{
		Name:    "train",
		Aliases: []string{"t"},
		Usage:   "Train the three probes and print their metrics",
		Action:  cmdTrain,
		Flags: []cli.Flag{
			sampleFileFlag,
			demoSizeFlag,
			seedFlag,
		},
	}
)

func cmdTrain(c *cli.Context) error {
	samples, err := loadSamples(c)
	if err != nil {
		return errors.Wrap(err, "failed to load samples")
	}
	log.Infof("training on %d samples...", len(samples))

	sys := qhi.New(systemConfig(c))
	m, err := sys.Train(samples)
	if err != nil {
		return errors.Wrap(err, "training failed")
	}

	fmt.Print(renderTrain(m))
	return nil
}
