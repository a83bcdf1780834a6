package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yungbote/shiftplan-backend/internal/app"
	"github.com/yungbote/shiftplan-backend/internal/platform/shutdown"
	"github.com/yungbote/shiftplan-backend/internal/seed"
)

func main() {
	file := flag.String("file", "roster.yaml", "YAML roster to replay")
	flag.Parse()

	doc, err := seed.LoadFile(*file)
	if err != nil {
		fmt.Printf("failed to load %s: %v\n", *file, err)
		os.Exit(1)
	}

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.Bootstrap(ctx)
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	replayer := seed.NewReplayer(a.Log, a.Services.Account, a.Repos.Account, a.Services.Roster, a.Services.Scheduling)
	report := replayer.Replay(ctx, doc)
	a.Close()

	if !report.OK() {
		fmt.Printf("%d row(s) rejected\n", len(report.Rejections))
		os.Exit(1)
	}
}
