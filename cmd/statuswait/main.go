package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cigate/statuswait/cmd/statuswait/config"
	"github.com/cigate/statuswait/pkg/status"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		logrus.Debugln("could not load .env file, relying on env vars")
	}

	conf, err := config.Environ()
	if err != nil {
		logger := logrus.WithError(err)
		logger.Fatalln("main: invalid configuration")
	}

	initLogging(conf)

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		fmt.Println(conf.String())
	}

	owner, name, err := conf.RepoOwnerAndName()
	if err != nil {
		logrus.WithError(err).Fatalln("main: invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	waiter := &status.Waiter{
		Fetcher:         status.NewGithubClient(conf.Token),
		Clock:           clockwork.NewRealClock(),
		Out:             os.Stdout,
		ErrOut:          os.Stderr,
		Owner:           owner,
		Repo:            name,
		SHA:             conf.SHA,
		RequiredContext: conf.RequiredContext,
		WaitBudget:      time.Duration(conf.WaitSeconds) * time.Second,
		PollInterval:    time.Duration(conf.PollSeconds) * time.Second,
	}

	outcome, err := waiter.Run(ctx)
	if err != nil {
		logrus.WithError(err).Fatalln("main: cannot poll commit status")
	}

	if !outcome.Success {
		os.Exit(1)
	}
}

// helper function configures the logging.
func initLogging(c *config.Config) {
	if c.Logging.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if c.Logging.Trace {
		logrus.SetLevel(logrus.TraceLevel)
	}
	if c.Logging.Text {
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:   c.Logging.Color,
			DisableColors: !c.Logging.Color,
		})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{
			PrettyPrint: c.Logging.Pretty,
		})
	}
}
