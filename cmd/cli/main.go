package main

import (
	"database/sql"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Roxrite0509/medguard/pkg/config"
	"github.com/Roxrite0509/medguard/pkg/data"
	"github.com/Roxrite0509/medguard/pkg/logging"
	"github.com/Roxrite0509/medguard/pkg/qhi"
	"github.com/Roxrite0509/medguard/pkg/sample"
)

const (
	dirMode = 0700
)

var (
	name    = "medguard"
	version = "v0.0.1-default"
	commit  = ""

	cfg        *config.Config
	dbFilePath = path.Join(getHomeDir(), data.DataFileName)
	debug      = false

	debugFlag = &cli.BoolFlag{
		Name:        "debug",
		Usage:       "Prints verbose logs (optional, default: false)",
		Destination: &debug,
	}

	dbFilePathFlag = &cli.StringFlag{
		Name:        "db",
		Usage:       fmt.Sprintf("Path to the Sqlite database file (optional, defaults to $HOME/.%s/data.db)", name),
		Destination: &dbFilePath,
		Value:       dbFilePath,
	}

	sampleFileFlag = &cli.StringFlag{
		Name:     "file",
		Usage:    "Path to a JSONL file of labeled samples (optional, defaults to the built-in demo corpus)",
		Required: false,
	}

	demoSizeFlag = &cli.IntFlag{
		Name:     "size",
		Usage:    "Number of demo samples to resample when no file is given",
		Value:    0,
		Required: false,
	}

	seedFlag = &cli.Uint64Flag{
		Name:     "seed",
		Usage:    "Random seed for resampling and probe training",
		Value:    0,
		Required: false,
	}
)

func main() {
	logging.Setup("info")

	var err error
	if cfg, err = config.ReadOrCreate(getHomeDir()); err != nil {
		fatalErr(err)
	}
	log.SetLevel(logging.ParseLevel(cfg.LogLevel))

	if err = data.Init(dbFilePath); err != nil {
		fatalErr(err)
	}

	app := &cli.App{
		Name:     name,
		Version:  fmt.Sprintf("%s - (commit: %s)", version, commit),
		Compiled: time.Now(),
		Usage:    "CLI for clinical LLM hallucination-risk scoring",
		Flags: []cli.Flag{
			debugFlag,
			dbFilePathFlag,
		},
		Commands: []*cli.Command{
			trainCmd,
			scoreCmd,
			benchmarkCmd,
			runsCmd,
			serverCmd,
		},
		Before: func(c *cli.Context) error {
			if c.Bool(debugFlag.Name) {
				log.SetLevel(log.DebugLevel)
			}

			path := c.String(dbFilePathFlag.Name)
			if path != "" {
				dbFilePath = path
			}
			return nil
		},
	}

	err = app.Run(os.Args)
	if err != nil {
		fatalErr(err)
	}
}

func fatalErr(err error) {
	if err != nil {
		log.Fatalf("fatal error: %v", err)
		os.Exit(1)
	}
}

func getDBOrFail() *sql.DB {
	db, err := data.GetDB(dbFilePath)
	if err != nil {
		log.Fatalf("fatal error creating DB: %v", err)
		os.Exit(1)
	}
	return db
}

func getHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Debugf("error getting home dir, using current dir instead: %v", err)
		return "."
	}

	dirName := "." + name
	dirPath := filepath.Join(home, dirName)
	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		log.Debugf("creating dir: %s", dirPath)
		err := os.Mkdir(dirPath, dirMode)
		if err != nil {
			log.Debugf("error creating dir: %s, using home: %s - %v", dirPath, home, err)
			return home
		}
	}
	return dirPath
}

// systemConfig folds the config file and the per-command seed flag into the
// scoring-system hyperparameters.
func systemConfig(c *cli.Context) qhi.Config {
	sc := qhi.DefaultConfig()
	if cfg != nil {
		if cfg.Seed != 0 {
			sc.Seed = cfg.Seed
		}
		if cfg.UncertaintyC > 0 {
			sc.UncertaintyC = cfg.UncertaintyC
		}
		if cfg.ViolationC > 0 {
			sc.ViolationC = cfg.ViolationC
		}
	}
	if s := c.Uint64(seedFlag.Name); s != 0 {
		sc.Seed = s
	}
	return sc
}

// loadSamples reads labeled samples from the --file flag, falling back to
// the resampled built-in demo corpus.
func loadSamples(c *cli.Context) ([]*sample.Sample, error) {
	if path := c.String(sampleFileFlag.Name); path != "" {
		return sample.LoadJSONL(path)
	}

	n := c.Int(demoSizeFlag.Name)
	if n <= 0 {
		n = 400
		if cfg != nil && cfg.DemoSize > 0 {
			n = cfg.DemoSize
		}
	}
	log.Debugf("using built-in demo corpus (%d samples)", n)
	return sample.LoadDemo(n, systemConfig(c).Seed), nil
}
