package main

import (
	"context"
	"log"
	"os"

	"github.com/complianceos/complianceos/internal/buildinfo"
	"github.com/complianceos/complianceos/internal/cli"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := cli.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
