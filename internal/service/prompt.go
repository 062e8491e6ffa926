package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/apperror"
)

var ErrNotANumber = errors.New("input is not a number")

// Prompter writes questions and reads one-line answers. The console menus and the human move
// source share one Prompter so they consume the same input stream.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Say prints a line.
func (that *Prompter) Say(format string, args ...any) {
	fmt.Fprintf(that.out, format+"\n", args...)
}

// Ask prints the prompt and returns the trimmed answer. A closed input yields ErrInputClosed.
func (that *Prompter) Ask(prompt string) (string, error) {
	fmt.Fprint(that.out, prompt)

	line, err := that.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}

		if errors.Is(err, io.EOF) {
			return "", apperror.ErrInputClosed
		}

		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// AskInt asks for a whole number. Non-numeric answers yield ErrNotANumber.
func (that *Prompter) AskInt(prompt string) (int, error) {
	answer, err := that.Ask(prompt)
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, answer)
	}

	return value, nil
}

// AskYesNo returns true for answers starting with "y".
func (that *Prompter) AskYesNo(prompt string) (bool, error) {
	answer, err := that.Ask(prompt)
	if err != nil {
		return false, err
	}

	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}
