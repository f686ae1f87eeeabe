package main

import (
	"log"
	"os"

	"tinyhttpd/internal/bootstrap"
	"tinyhttpd/internal/config"

	"go.uber.org/zap"
)

func main() {
	conf, err := config.MustLoad(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}

	b, err := bootstrap.New(conf)
	if err != nil {
		log.Fatalf("Failed to initialize: %s", err)
	}

	if err = b.Run(); err != nil {
		b.Logger.Fatal("server stopped with error", zap.Error(err))
	}
}
