package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wippyai/cairo-panic/felt"
	"github.com/wippyai/cairo-panic/panicfmt"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Type a payload and watch the message render",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd)
		},
	}
}

type interactiveModel struct {
	err     error
	styles  styles
	message string
	items   []panicfmt.Item
	input   textinput.Model
}

func newInteractiveModel(st styles) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "0x1 0x68656c6c6f ..."
	ti.Prompt = "felts: "
	ti.Width = 72
	ti.Focus()

	m := &interactiveModel{styles: st, input: ti}
	m.refresh()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+u":
			m.input.SetValue("")
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

// refresh re-renders the message from the current input.
func (m *interactiveModel) refresh() {
	felts, err := felt.ParseList(m.input.Value())
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.items = panicfmt.Items(felts)
	m.message = panicfmt.Message(felts)
}

func (m *interactiveModel) View() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.render(st.title, "Panic Formatter"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(st.render(st.err, fmt.Sprintf("Error: %v", m.err)))
	} else {
		b.WriteString(st.render(st.panic, m.message))
		for i, it := range m.items {
			b.WriteString(fmt.Sprintf("\n  %d. %-5s %s", i+1, it.Kind, st.item(it)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(st.render(st.help, "type felts separated by spaces or commas • ctrl+u clear • esc quit"))
	return b.String()
}

func (a *app) runInteractive(cmd *cobra.Command) error {
	if !a.stdoutIsTerminal() {
		return fmt.Errorf("interactive mode requires a terminal; use format instead")
	}

	m := newInteractiveModel(newStyles(os.Stdout, a.colorEnabled()))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err := p.Run()
	return err
}
