package main

import (
	"context"
	"os/signal"
	"syscall"

	"ccash-backend/cmd/ccash/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	commands.ExecuteContext(ctx)
}
