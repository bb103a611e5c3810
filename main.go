package main

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/kiosk-host/api"
	"github.com/carson-networks/kiosk-host/internal/config"
	"github.com/carson-networks/kiosk-host/internal/dataset"
	"github.com/carson-networks/kiosk-host/internal/host"
	"github.com/carson-networks/kiosk-host/internal/logging"
	"github.com/carson-networks/kiosk-host/internal/operator"
	"github.com/carson-networks/kiosk-host/internal/session"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("kiosk-host starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	records, err := dataset.Load(envConfig.DatasetPath)
	if err != nil {
		logrus.WithError(err).Fatal("dataset.Load")
		return
	}
	members, err := dataset.Build(records, nil)
	if err != nil {
		logrus.WithError(err).Fatal("dataset.Build")
		return
	}
	logger.WithField("members", len(members)).Info("dataset loaded")

	sessions := session.NewRegistry(time.Duration(envConfig.SessionTTLMinutes)*time.Minute, nil)
	financialHost := host.New(members, sessions, logger)

	delegator := operator.NewDelegator(financialHost, logger, envConfig.Workers)
	delegator.Start()
	defer delegator.Stop()

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:    logger,
			Port:      envConfig.Port,
			Delegator: delegator,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
