package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"tableflip.dev/freewrite/pkg/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := commands.New()
	cmd.SilenceErrors = true
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("error during command execution")
	}
}
