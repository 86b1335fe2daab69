package main

import (
	"context"
	"log"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/config"
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
