package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/wippyai/cairo-panic/panicfmt"
	"github.com/wippyai/cairo-panic/report"
)

type styles struct {
	title  lipgloss.Style
	panic  lipgloss.Style
	text   lipgloss.Style
	plain  lipgloss.Style
	result lipgloss.Style
	err    lipgloss.Style
	help   lipgloss.Style

	enabled bool
}

func newStyles(w io.Writer, enabled bool) styles {
	r := lipgloss.NewRenderer(w)
	if enabled {
		r.SetColorProfile(termenv.ANSI256)
	}

	return styles{
		enabled: enabled,
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		panic:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		text:   r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		plain:  r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		result: r.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		err:    r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		help:   r.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

func (s styles) render(style lipgloss.Style, str string) string {
	if !s.enabled {
		return str
	}
	return style.Render(str)
}

// item renders one payload item in the color of its kind.
func (s styles) item(it panicfmt.Item) string {
	if it.Kind == panicfmt.ItemText {
		return s.render(s.text, it.String())
	}
	return s.render(s.plain, it.String())
}

// emit prints env as JSON or as a line of text.
func (a *app) emit(w io.Writer, env *report.Envelope) error {
	if a.cfg.Output.JSON {
		return env.Write(w)
	}

	st := newStyles(w, a.colorEnabled())
	var line string
	switch env.Status {
	case report.StatusPanic:
		line = st.render(st.panic, env.Message)
	case report.StatusSuccess:
		line = st.render(st.result, fmt.Sprintf("Result: %v", env.Data))
	default:
		line = st.render(st.err, "Error: "+env.Message)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// statusError converts the envelope status into the command's error.
func statusError(env *report.Envelope) error {
	if code := env.ExitCode(); code != report.ExitSuccess {
		return &exitError{code: code}
	}
	return nil
}
