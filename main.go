package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cinema-booking-cli/cmd"
)

const appName = "cinema-booking-cli"

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cmd.Execute(ctx, cmd.BuildInfo{Name: appName, Version: version, Commit: commit})
	stop()
	os.Exit(code)
}
