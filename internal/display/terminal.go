package display

import (
	"fmt"
	"io"
	"os"
	"sync"

	"FinDash/internal/domain/models"

	"golang.org/x/term"
)

const (
	clearScreen = "\033[H\033[2J"
)

// Terminal draws the regions on a writer. On a TTY every write repaints the
// screen (report, blank line, countdown). Elsewhere only report changes are
// printed, so logs and pipes are not flooded by the countdown.
type Terminal struct {
	mu        sync.Mutex
	out       io.Writer
	tty       bool
	report    string
	countdown string
}

// NewTerminal writes to stdout, repainting only when stdout is a terminal.
func NewTerminal() *Terminal {
	return NewTerminalWriter(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

// NewTerminalWriter writes to out; tty selects repaint mode.
func NewTerminalWriter(out io.Writer, tty bool) *Terminal {
	return &Terminal{out: out, tty: tty}
}

func (t *Terminal) Render(region models.Region, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch region {
	case models.RegionReport:
		if !t.tty && text == t.report {
			return
		}
		t.report = text
	case models.RegionCountdown:
		t.countdown = text
	default:
		return
	}

	if t.tty {
		fmt.Fprintf(t.out, "%s%s\n%s\n", clearScreen, t.report, t.countdown)
		return
	}
	if region == models.RegionReport {
		fmt.Fprintln(t.out, text)
	}
}
