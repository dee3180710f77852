package main

import (
	"os"

	"newspress/cmd/handlers"
	"newspress/internal/logger"
)

func main() {
	logger.Init()
	if err := handlers.Execute(); err != nil {
		os.Exit(1)
	}
}
