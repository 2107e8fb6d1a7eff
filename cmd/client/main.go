package main

import (
	"context"
	"log"
	"os"

	"github.com/dkrasnova/brandkit/internal/client/cli"
	"github.com/dkrasnova/brandkit/internal/client/config"
	"github.com/dkrasnova/brandkit/internal/observe"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg, observe.NewText(os.Stderr))
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
