package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

var (
	// ErrQuit is returned by a Prompter when input ends or the user aborts.
	ErrQuit = errors.New("quit")

	// ErrInvalidChoice is returned by Choose when the answer matches no choice.
	ErrInvalidChoice = errors.New("invalid choice")
)

// Choice is one numbered option of a menu.
type Choice struct {
	Key   int
	Label string
}

// Prompter reads answers from the user.
type Prompter interface {
	// Ask shows label and returns the line typed, without the line break.
	Ask(ctx context.Context, label string) (string, error)
	// Choose shows the choices and returns the key picked.
	Choose(ctx context.Context, title string, choices []Choice) (int, error)
}

// NewPrompter returns form-based prompts when both in and out are terminals
// and plain line prompts otherwise, so input can be piped in.
func NewPrompter(in io.Reader, out io.Writer) Prompter {
	if isTerminal(in) && isTerminal(out) {
		return newFormPrompter()
	}
	return NewLinePrompter(in, out)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// LinePrompter reads one answer per input line.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask implements Prompter.
func (p *LinePrompter) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrQuit
	}
	fmt.Fprintf(p.out, "%s: ", label)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" {
			fmt.Fprintln(p.out)
			return "", ErrQuit
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Choose implements Prompter.
func (p *LinePrompter) Choose(ctx context.Context, title string, choices []Choice) (int, error) {
	if title != "" {
		fmt.Fprintln(p.out, title)
	}
	for _, c := range choices {
		fmt.Fprintf(p.out, "%d - %s\n", c.Key, c.Label)
	}

	answer, err := p.Ask(ctx, "Escolha")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, ErrInvalidChoice
	}
	for _, c := range choices {
		if c.Key == n {
			return n, nil
		}
	}
	return 0, ErrInvalidChoice
}
