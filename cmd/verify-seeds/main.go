package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hudsor01/tenant-flow-sub002/internal/commands"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := commands.VerifyCmd()
	rootCmd.AddCommand(
		commands.TiersCmd(),
		commands.HistoryCmd(),
		commands.StampCmd(),
		commands.InitCmd(),
	)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, commands.ErrChecksFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
