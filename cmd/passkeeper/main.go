package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/passkeeper/internal/app"
	"github.com/dmitrijs2005/passkeeper/internal/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "passkeeper: %v\n", err)
		os.Exit(2)
	}

	a, err := app.NewApp(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "passkeeper: %v\n", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "passkeeper: %v\n", err)
		os.Exit(1)
	}
}
