package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/config"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/service"
	"github.com/rocketscienceinc/tictactoe-4x4/transport/console"
)

// RunApp - runs the console game on the given input and output.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	bot := service.NewBotService(logger, conf.Opponent.Seed, conf.Opponent.ThinkDelay)
	prompter := service.NewPrompter(in, out)

	consoleServer := console.New(logger, prompter, bot, console.Options{
		BoardSize:        conf.Game.BoardSize,
		FirstMover:       conf.Game.FirstMoverMark(),
		FixedFirstMover:  conf.Game.FixedFirstMover,
		DefaultRounds:    conf.Game.DefaultRounds,
		ConsistencyCheck: conf.Game.ConsistencyCheck,
	})

	// run console
	consoleErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting console", "board_size", conf.Game.BoardSize)
		consoleErrCh <- consoleServer.Start(ctx)
	}()

	select {
	case err := <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}

		log.Info("Console closed")
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
