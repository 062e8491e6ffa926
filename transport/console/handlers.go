package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/entity"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/usecase"
)

func (that *Server) playSingleGame(ctx context.Context, vsAI bool) error {
	log := that.logger.With("method", "playSingleGame", "vs_ai", vsAI)

	firstMover := that.options.FirstMover
	if vsAI {
		aiStarts, err := that.prompter.AskYesNo("Should AI start? (y/n): ")
		if err != nil {
			return err
		}

		firstMover = entity.PlayerX
		if aiStarts {
			firstMover = entity.PlayerO
		}
	}

	session, err := that.newSession(vsAI, firstMover, false)
	if err != nil {
		return err
	}

	result, err := session.RunRound(ctx)
	if err != nil {
		return fmt.Errorf("game failed: %w", err)
	}

	log.Info("game finished", "session_id", session.ID(), "state", result.State)

	return nil
}

func (that *Server) playTournament(ctx context.Context, vsAI bool) error {
	log := that.logger.With("method", "playTournament", "vs_ai", vsAI)

	rounds, ok, err := that.askRounds()
	if err != nil {
		return err
	}
	if !ok {
		that.prompter.Say("Invalid input. Please enter a valid number of games.")
		return nil
	}

	// the AI opens the first round of a single player tournament
	firstMover := that.options.FirstMover
	if vsAI {
		firstMover = entity.PlayerO
	}

	session, err := that.newSession(vsAI, firstMover, !that.options.FixedFirstMover)
	if err != nil {
		return err
	}

	tally, err := session.RunTournament(ctx, rounds)
	if err != nil {
		return fmt.Errorf("tournament failed: %w", err)
	}

	that.prompter.Say("\nTournament Results:")
	that.prompter.Say("%s: %d", entity.StateXWins.Describe(), tally.XWins)
	that.prompter.Say("%s: %d", entity.StateOWins.Describe(), tally.OWins)
	that.prompter.Say("%s: %d", entity.StateDraw.Describe(), tally.Draws)

	log.Info("tournament finished", "session_id", session.ID(), "rounds", rounds)

	return nil
}

// askRounds reads a positive round count. An empty answer selects the default.
func (that *Server) askRounds() (int, bool, error) {
	answer, err := that.prompter.Ask(fmt.Sprintf("Enter the number of games for the tournament (default %d): ",
		that.options.DefaultRounds))
	if err != nil {
		return 0, false, err
	}

	if answer == "" {
		return that.options.DefaultRounds, true, nil
	}

	rounds, err := strconv.Atoi(answer)
	if err != nil || rounds < 1 {
		return 0, false, nil
	}

	return rounds, true, nil
}

// newSession seats a person as X and either the AI or a second person as O.
func (that *Server) newSession(vsAI bool, firstMover entity.Mark, alternate bool) (*usecase.GameSession, error) {
	playerX := usecase.Seat{Player: entity.NewHumanPlayer("Player X", entity.PlayerX), Source: that.human}
	playerO := usecase.Seat{Player: entity.NewHumanPlayer("Player O", entity.PlayerO), Source: that.human}

	if vsAI {
		playerO = usecase.Seat{Player: entity.NewBotPlayer(entity.PlayerO), Source: that.bot}
	}

	settings := usecase.Settings{
		BoardSize:           that.options.BoardSize,
		FirstMover:          firstMover,
		AlternateFirstMover: alternate,
		ConsistencyCheck:    that.options.ConsistencyCheck,
	}

	session, err := usecase.NewGameSession(that.logger, settings, playerX, playerO)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session.SetObserver(&printer{prompter: that.prompter})

	return session, nil
}
