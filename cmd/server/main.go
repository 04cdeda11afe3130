package main

import (
	"os"

	"wander-server/internal/cli"
	"wander-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	if err := cli.Execute(); err != nil {
		logger.Log.WithError(err).Error("wander-server failed")
		os.Exit(1)
	}
}
