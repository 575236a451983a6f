package prompt

import (
	"github.com/charmbracelet/huh"
)

// selectHeight caps the visible rows of a Select. A full palette has 21
// colours, so longer lists scroll and can be filtered with '/'.
const selectHeight = 12

// HuhPrompter implements Prompter with charmbracelet/huh forms.
type HuhPrompter struct {
	theme *huh.Theme
}

func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{theme: huh.ThemeCharm()}
}

func (p *HuhPrompter) run(field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithShowHelp(false).
		Run()
}

func (p *HuhPrompter) Select(title string, options []Option) (string, error) {
	opts := make([]huh.Option[string], len(options))
	for i, opt := range options {
		opts[i] = huh.NewOption(opt.Label, opt.Value)
	}

	var value string
	sel := huh.NewSelect[string]().
		Title(title).
		Options(opts...).
		Value(&value)
	if len(opts) > selectHeight {
		sel = sel.Height(selectHeight).Filtering(true)
	}
	err := p.run(sel)
	return value, err
}

func (p *HuhPrompter) Input(title, placeholder string) (string, error) {
	var value string
	err := p.run(huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value))
	return value, err
}

func (p *HuhPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	value := defaultValue
	err := p.run(huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value))
	return value, err
}
