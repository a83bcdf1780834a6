package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/shiftplan-backend/internal/app"
	"github.com/yungbote/shiftplan-backend/internal/platform/shutdown"
)

func main() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	a.Start()
	err = a.Run(ctx)
	if err != nil {
		a.Log.Error("Server exited", "error", err)
	}
	a.Close()
	if err != nil {
		os.Exit(1)
	}
}
