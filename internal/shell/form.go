package shell

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
)

// formPrompter asks through huh forms on an interactive terminal.
type formPrompter struct {
	theme *huh.Theme
}

func newFormPrompter() *formPrompter {
	return &formPrompter{theme: huh.ThemeBase()}
}

func (p *formPrompter) run(ctx context.Context, field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithShowHelp(false).
		RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return ErrQuit
	}
	return err
}

// Ask implements Prompter.
func (p *formPrompter) Ask(ctx context.Context, label string) (string, error) {
	var value string
	if err := p.run(ctx, huh.NewInput().Title(label).Value(&value)); err != nil {
		return "", err
	}
	return value, nil
}

// Choose implements Prompter.
func (p *formPrompter) Choose(ctx context.Context, title string, choices []Choice) (int, error) {
	opts := make([]huh.Option[int], 0, len(choices))
	for _, c := range choices {
		opts = append(opts, huh.NewOption(c.Label, c.Key))
	}

	var key int
	if len(choices) > 0 {
		key = choices[0].Key
	}
	sel := huh.NewSelect[int]().Title(title).Options(opts...).Value(&key)
	if err := p.run(ctx, sel); err != nil {
		return 0, err
	}
	return key, nil
}
