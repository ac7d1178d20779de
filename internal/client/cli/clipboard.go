package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var ErrNoTerminal = errors.New("clipboard needs an interactive terminal")

// OSC52Clipboard copies text by sending the OSC 52 escape sequence, which
// most terminal emulators (and tmux, over SSH) forward to the system
// clipboard.
type OSC52Clipboard struct {
	w          io.Writer
	isTerminal func() bool
}

func NewOSC52Clipboard(f *os.File) *OSC52Clipboard {
	return &OSC52Clipboard{
		w:          f,
		isTerminal: func() bool { return term.IsTerminal(int(f.Fd())) },
	}
}

func (c *OSC52Clipboard) Copy(text string) error {
	if c.isTerminal != nil && !c.isTerminal() {
		return ErrNoTerminal
	}
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	if _, err := io.WriteString(c.w, seq); err != nil {
		return fmt.Errorf("write clipboard sequence: %w", err)
	}
	return nil
}
