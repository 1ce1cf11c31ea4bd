package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bassamadnan/mailbrief/orchestrator"
)

type promptState int

const (
	promptWaiting promptState = iota
	promptConfirmed
	promptAborted
)

// promptModel waits for one key: Enter goes on, q/Esc/Ctrl+C stop.
type promptModel struct {
	text  string
	state promptState
}

func (m promptModel) Init() tea.Cmd { return nil }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.state = promptConfirmed
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.state = promptAborted
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m promptModel) View() string {
	switch m.state {
	case promptConfirmed:
		return ""
	case promptAborted:
		return HintStyle.Render("Stopped.") + "\n"
	}
	return PromptStyle.Render(m.text) + " " + HintStyle.Render("(enter to continue, q to quit)") + "\n"
}

// EnterPrompter asks before each step of a run. Nil In and Out mean the
// terminal.
type EnterPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (e EnterPrompter) Confirm(ctx context.Context, prompt string) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if e.In != nil {
		opts = append(opts, tea.WithInput(e.In))
	}
	if e.Out != nil {
		opts = append(opts, tea.WithOutput(e.Out))
	}

	final, err := tea.NewProgram(promptModel{text: prompt}, opts...).Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	if m, ok := final.(promptModel); ok && m.state == promptConfirmed {
		return nil
	}
	return orchestrator.ErrAborted
}

// AutoPrompter never asks.
type AutoPrompter struct{}

func (AutoPrompter) Confirm(context.Context, string) error { return nil }
