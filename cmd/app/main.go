package main

import (
	"nyumbani/config"
	"nyumbani/di"
	"nyumbani/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
