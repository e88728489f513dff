package main

import (
	"context"
	"log"

	"github.com/complianceos/complianceos/internal/config"
	"github.com/complianceos/complianceos/internal/server"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
