package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Roxrite0509/medguard/pkg/net"
	"github.com/Roxrite0509/medguard/pkg/qhi"
	"github.com/Roxrite0509/medguard/pkg/sample"
)

var (
	scoreTextFlag = &cli.StringFlag{
		Name:     "text",
		Usage:    "Clinical Q&A text to score",
		Required: true,
	}

	scoreSpecialtyFlag = &cli.StringFlag{
		Name:     "specialty",
		Usage:    "Clinical specialty of the sample (optional, default: general)",
		Required: false,
	}

	scoreEntitiesFlag = &cli.StringFlag{
		Name:     "entities",
		Usage:    "Comma-separated entity list (optional, extracted from text when omitted)",
		Required: false,
	}

	scoreRemoteFlag = &cli.StringFlag{
		Name:     "remote",
		Usage:    "Base URL of a running medguard server (optional, scores locally when omitted)",
		Required: false,
	}

	scoreCmd = &cli.Command{
		Name:    "score",
		Aliases: []string{"s"},
		Usage:   "Score a clinical text for hallucination risk",
		Action:  cmdScore,
		Flags: []cli.Flag{
			scoreTextFlag,
			scoreSpecialtyFlag,
			scoreEntitiesFlag,
			scoreRemoteFlag,
			sampleFileFlag,
			demoSizeFlag,
			seedFlag,
		},
	}
)

func cmdScore(c *cli.Context) error {
	var entities []string
	if raw := c.String(scoreEntitiesFlag.Name); raw != "" {
		for _, e := range strings.Split(raw, ",") {
			if e = strings.TrimSpace(e); e != "" {
				entities = append(entities, e)
			}
		}
	}

	smp := sample.New(c.String(scoreTextFlag.Name), entities, 0, 0,
		c.String(scoreSpecialtyFlag.Name))

	if remote := c.String(scoreRemoteFlag.Name); remote != "" {
		var sc qhi.Score
		url := strings.TrimSuffix(remote, "/") + "/score"
		if err := net.PostJSON(url, smp, &sc); err != nil {
			return errors.Wrap(err, "remote scoring failed")
		}
		fmt.Println(renderScore(&sc))
		return nil
	}

	samples, err := loadSamples(c)
	if err != nil {
		return errors.Wrap(err, "failed to load training samples")
	}

	sys := qhi.New(systemConfig(c))
	if _, err := sys.Train(samples); err != nil {
		return errors.Wrap(err, "training failed")
	}
	log.Debugf("trained on %d samples", len(samples))

	fmt.Println(renderScore(sys.Score(smp)))
	return nil
}
