package main

import (
	"github.com/sirupsen/logrus"

	"gatepass-portal-svc/src/internal/config"
	"gatepass-portal-svc/src/internal/logger"
	"gatepass-portal-svc/src/internal/server"
)

var log = *logrus.StandardLogger()

func main() {
	cfg := config.Load()
	logger.Init(cfg)

	log.Infof("Application %s is starting....", cfg.App.Name)

	srv, err := server.New(cfg)
	if err != nil {
		log.WithError(err).Fatalf("Error initializing server: %v", err)
	}

	if err := srv.Start(); err != nil {
		log.WithError(err).Fatalf("Error starting server: %v", err)
	}
}
