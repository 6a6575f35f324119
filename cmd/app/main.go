package main

import (
	"slotbook/config"
	"slotbook/di"
	"slotbook/shared/logger"
)

// @title Slotbook API
// @version 1.0
// @description Hourly slot reservation service for a shared resource.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
