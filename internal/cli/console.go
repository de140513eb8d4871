package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alwaysmad/bookkeeper/internal/common"
)

// ConsoleView is a line-oriented controller.View. It reads one command per
// line and prints the state after every successful change.
type ConsoleView struct {
	*Session
	in  *NonBlockingReader
	out io.Writer
}

// NewConsoleView creates a console view reading from in and writing to out.
func NewConsoleView(in io.Reader, out io.Writer, now func() time.Time) *ConsoleView {
	return &ConsoleView{
		Session: NewSession(now),
		in:      NewNonBlockingReader(in),
		out:     out,
	}
}

// InitLayout prints the banner.
func (v *ConsoleView) InitLayout() {
	v.println(FormatTitle("Bookkeeper"))
}

// Render prints the current state.
func (v *ConsoleView) Render() {
	v.println(RenderSnapshot(v.Snapshot()))
}

// Present runs the read-execute-print loop until quit, end of input or cancellation.
func (v *ConsoleView) Present(ctx context.Context) error {
	v.Render()
	v.println(FormatInfo("Type 'help' for commands."))

	for {
		v.print(FormatPrompt("bookkeeper"))
		line, err := v.in.ReadLine(ctx)
		switch {
		case errors.Is(err, ErrInputCancelled), errors.Is(err, io.EOF):
			v.println("")
			return nil
		case err != nil:
			return fmt.Errorf("failed to read command: %w", err)
		}
		if line == "" {
			continue
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			v.println(FormatError(err.Error()))
			continue
		}
		if cmd.Kind == CommandQuit {
			return nil
		}

		msg, err := v.Execute(ctx, cmd)
		if err != nil {
			slog.Debug("command failed", "command", line, "error", err)
			v.println(FormatError(common.UserMessage(err)))
			continue
		}
		if cmd.Kind == CommandHelp {
			v.println(msg)
			continue
		}
		v.println(FormatSuccess(msg))
		v.Render()
	}
}

func (v *ConsoleView) print(s string) {
	if _, err := fmt.Fprint(v.out, s); err != nil {
		slog.Warn("Failed to write to console", "error", err)
	}
}

func (v *ConsoleView) println(s string) {
	v.print(s + "\n")
}
