package format

import (
	"fmt"
	"runtime"
	"strings"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
	// Newline is the output line terminator, "\n" or "\r\n".
	Newline string
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	if o.Newline == "" {
		o.Newline = platformNewline()
	}
	return o
}

func platformNewline() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// NewlineFor resolves a newline mode: auto, lf or crlf.
func NewlineFor(mode string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return platformNewline(), nil
	case "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	default:
		return "", fmt.Errorf("unknown newline mode %q (want auto, lf or crlf)", mode)
	}
}
