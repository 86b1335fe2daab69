package main

import (
	"context"
	"log"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/cli"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
