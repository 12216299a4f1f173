package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Roxrite0509/medguard/pkg/data"
	"github.com/Roxrite0509/medguard/pkg/qhi"
	"github.com/Roxrite0509/medguard/pkg/sample"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 300
	serverMaxHeaderBytes      = 20
	serverPortDefault         = 8080
)

var (
	portFlag = &cli.IntFlag{
		Name:     "port",
		Usage:    "Port on which the server will listen",
		Value:    serverPortDefault,
		Required: false,
	}

	serverCmd = &cli.Command{
		Name:    "server",
		Aliases: []string{"serve"},
		Usage:   "Start local HTTP scoring server",
		Action:  cmdStartServer,
		Flags: []cli.Flag{
			portFlag,
			sampleFileFlag,
			demoSizeFlag,
			seedFlag,
		},
	}
)

func cmdStartServer(c *cli.Context) error {
	samples, err := loadSamples(c)
	if err != nil {
		return errors.Wrap(err, "failed to load training samples")
	}

	sys := qhi.New(systemConfig(c))
	if _, err := sys.Train(samples); err != nil {
		return errors.Wrap(err, "training failed")
	}
	log.Infof("scoring system trained on %d samples", len(samples))

	port := c.Int(portFlag.Name)
	address := fmt.Sprintf("127.0.0.1:%d", port)

	s := &http.Server{
		Addr:           address,
		Handler:        makeRouter(sys),
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("error starting server: %v", err)
		}
	}()

	log.Infof("server started: http://%s", address)

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
		log.Errorf("error shutting down server: %v", err)
	}
	return nil
}

func makeRouter(sys *qhi.System) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", healthHandler(sys))
	r.POST("/score", scoreHandler(sys))
	r.GET("/runs", runsHandler)

	return r
}

func healthHandler(sys *qhi.System) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": version,
			"trained": sys.Trained(),
		})
	}
}

func scoreHandler(sys *qhi.System) gin.HandlerFunc {
	return func(c *gin.Context) {
		var smp sample.Sample
		if err := c.ShouldBindJSON(&smp); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if smp.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
			return
		}
		smp.Normalize()

		c.JSON(http.StatusOK, sys.Score(&smp))
	}
}

func runsHandler(c *gin.Context) {
	db, err := data.GetDB(dbFilePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer db.Close()

	runs, err := data.ListRuns(db, runsLimitDefault)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}
