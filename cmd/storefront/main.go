package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	ctx, cancel := listenForKillSignal(context.Background())
	defer cancel()

	app := &cli.App{
		Name:  appID,
		Usage: "storefront cart and catalog service",
		Commands: []*cli.Command{
			serviceCommand(),
			migrateCommand(),
			cartCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.WithError(err).Fatal("storefront failed")
	}
}

func listenForKillSignal(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	killSignalChan := make(chan os.Signal, 1)
	signal.Notify(killSignalChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(killSignalChan)
		select {
		case <-ctx.Done():
		case killSignal := <-killSignalChan:
			switch killSignal {
			case os.Interrupt:
				log.Info("Got SIGINT...")
			case syscall.SIGTERM:
				log.Info("Got SIGTERM...")
			}
			cancel()
		}
	}()

	return ctx, cancel
}

func setupLogging(c *config) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithError(err).WithField("level", c.LogLevel).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
