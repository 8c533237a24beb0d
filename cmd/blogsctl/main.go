package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bloglist/internal/blogs/cli"
	"bloglist/pkg/logger"
)

func main() {
	if err := logger.InitGlobalLogger(logger.Development, os.Getenv("BLOGS_LOGGER_LEVEL")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
