package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/entity"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/service"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/usecase"
)

var (
	errBack = errors.New("return to previous menu")
	errExit = errors.New("exit requested")
)

// Options are the game settings the console applies to every session it starts.
type Options struct {
	BoardSize        int
	FirstMover       entity.Mark
	FixedFirstMover  bool
	DefaultRounds    int
	ConsistencyCheck bool
}

type handler func(ctx context.Context) error

type menu struct {
	title    string
	items    []string
	handlers map[int]handler
}

type Server struct {
	logger   *slog.Logger
	prompter *service.Prompter
	human    usecase.MoveSource
	bot      usecase.MoveSource
	options  Options

	mainMenu *menu
}

// New builds the console surface. The bot plays the AI seat in single player mode; people enter
// their moves through prompter.
func New(logger *slog.Logger, prompter *service.Prompter, bot usecase.MoveSource, options Options) *Server {
	if options.FirstMover == entity.EmptyCell {
		options.FirstMover = entity.PlayerX
	}

	if options.DefaultRounds < 1 {
		options.DefaultRounds = 1
	}

	server := &Server{
		logger:   logger.With("component", "console"),
		prompter: prompter,
		human:    service.NewHumanService(logger, prompter),
		bot:      &announcingSource{prompter: prompter, source: bot},
		options:  options,
	}

	server.mainMenu = &menu{
		title: "Tic Tac Toe Main Menu:",
		items: []string{"Single Player (vs AI)", "Multiplayer (Human vs Human)", "Exit"},
		handlers: map[int]handler{
			1: server.modeMenu(true).run(server),
			2: server.modeMenu(false).run(server),
			3: func(context.Context) error { return errExit },
		},
	}

	return server
}

// Start runs the main menu until the player exits, the input is closed or ctx is cancelled.
func (that *Server) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	err := that.mainMenu.run(that)(ctx)

	switch {
	case err == nil, errors.Is(err, errExit):
		that.prompter.Say("Thanks for playing!")
		return nil
	case errors.Is(err, apperror.ErrInputClosed):
		log.Info("input closed, leaving the game")
		return nil
	case errors.Is(err, context.Canceled):
		log.Info("console interrupted")
		return nil
	default:
		log.Error("console stopped", "error", err)
		return fmt.Errorf("console failed: %w", err)
	}
}

func (that *Server) modeMenu(vsAI bool) *menu {
	title := "Multiplayer Menu:"
	if vsAI {
		title = "Single Player vs. AI Menu:"
	}

	return &menu{
		title: title,
		items: []string{"Play a single game", "Play a tournament", "Return to main menu"},
		handlers: map[int]handler{
			1: func(ctx context.Context) error { return that.playSingleGame(ctx, vsAI) },
			2: func(ctx context.Context) error { return that.playTournament(ctx, vsAI) },
			3: func(context.Context) error { return errBack },
		},
	}
}

// run returns a handler that shows the menu and dispatches choices until one of the handlers
// asks to go back or fails.
func (that *menu) run(server *Server) handler {
	return func(ctx context.Context) error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}

			server.prompter.Say("\n%s", that.title)
			for i, item := range that.items {
				server.prompter.Say("%d. %s", i+1, item)
			}

			choice, err := server.askChoice(len(that.items))
			if err != nil {
				return err
			}

			if err = that.handlers[choice](ctx); err != nil {
				if errors.Is(err, errBack) {
					return nil
				}

				return err
			}
		}
	}
}

func (that *Server) askChoice(maxChoice int) (int, error) {
	for {
		choice, err := that.prompter.AskInt(fmt.Sprintf("Enter your choice (1-%d): ", maxChoice))
		if errors.Is(err, service.ErrNotANumber) {
			that.prompter.Say("Invalid input. Please enter a number.")
			continue
		}
		if err != nil {
			return 0, err
		}

		if choice < 1 || choice > maxChoice {
			that.prompter.Say("Invalid choice. Please enter a number between 1 and %d.", maxChoice)
			continue
		}

		return choice, nil
	}
}
