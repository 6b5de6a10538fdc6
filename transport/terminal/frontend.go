package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/wricardo/mcp-training/boxworld/game/engine"
	"github.com/wricardo/mcp-training/boxworld/game/input"
)

const (
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
	ansiClear  = "\x1b[H\x1b[2J"
)

// Frontend plays one engine from a keyboard stream
type Frontend struct {
	engine    engine.Engine
	in        *bufio.Reader
	out       io.Writer
	debouncer input.Debouncer

	ansi    bool
	newline string
}

// Option configures a Frontend
type Option func(*Frontend)

// WithANSI clears the screen between frames and styles the status lines
func WithANSI(enabled bool) Option {
	return func(f *Frontend) { f.ansi = enabled }
}

// WithRawNewlines ends lines with CRLF, for terminals in raw mode
func WithRawNewlines(enabled bool) Option {
	return func(f *Frontend) {
		if enabled {
			f.newline = "\r\n"
		} else {
			f.newline = "\n"
		}
	}
}

// NewFrontend wires an engine to a key source and a display
func NewFrontend(e engine.Engine, in io.Reader, out io.Writer, opts ...Option) *Frontend {
	f := &Frontend{
		engine:  e,
		in:      bufio.NewReader(in),
		out:     out,
		newline: "\n",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run draws the first frame, then one frame per recognised key until
// 'q', end of input or ctx is done
func (f *Frontend) Run(ctx context.Context) error {
	if err := f.render(); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r, _, err := f.in.ReadRune()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}

		if r == 'q' || r == 'Q' || r == 3 { // 3 is ctrl-c in raw mode
			return nil
		}

		button, ok := input.KeyButton(r)
		if !ok {
			continue
		}

		f.Step(button)
		if err := f.render(); err != nil {
			return err
		}
	}
}

// Step runs one frame with button pressed and returns what the engine did.
// Keys carry no release event, so the button goes up again at frame end.
func (f *Frontend) Step(button input.Button) engine.Outcome {
	f.debouncer.Press(button)
	action := f.debouncer.Tick()
	f.debouncer.Release(button)
	return f.engine.Update(action)
}

func (f *Frontend) render() error {
	var b strings.Builder
	if f.ansi {
		b.WriteString(ansiClear)
	}

	for _, line := range Frame(f.engine.State()) {
		b.WriteString(f.style(line))
		b.WriteString(f.newline)
	}
	b.WriteString(f.newline)
	b.WriteString("keys: wasd/hjkl move, z undo, r restart, n next, p previous, q quit")
	b.WriteString(f.newline)

	_, err := io.WriteString(f.out, b.String())
	return err
}

func (f *Frontend) style(line Line) string {
	if !f.ansi {
		return line.Text
	}
	switch {
	case line.Highlight:
		return ansiBold + ansiYellow + line.Text + ansiReset
	case line.Disabled:
		return ansiDim + line.Text + ansiReset
	}
	return line.Text
}

// Line is one row of screen output
type Line struct {
	Text      string
	Disabled  bool
	Highlight bool
}

// Frame lays out the board followed by the status lines
func Frame(state *engine.GameState) []Line {
	var lines []Line
	for _, row := range state.Board.Rows() {
		lines = append(lines, Line{Text: strings.TrimRightFunc(strings.ReplaceAll(row, "-", " "), unicode.IsSpace)})
	}
	lines = append(lines, Line{})

	level := fmt.Sprintf("level: %d", state.Level)
	if state.Solved {
		level += " [solved]"
	}
	lines = append(lines,
		Line{Text: level, Highlight: state.Solved},
		hint("X", "undo box move", state.CanUndo),
		hint("Y", "restart level", true),
		hint("A", "next level", state.HasNext),
		hint("B", "previous level", state.HasPrevious),
	)
	return lines
}

func hint(button, label string, available bool) Line {
	text := fmt.Sprintf("(%s): %s", button, label)
	if !available {
		text += " (unavailable)"
	}
	return Line{Text: text, Disabled: !available}
}
