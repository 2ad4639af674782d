package sink

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

// Format selects how records are printed.
type Format string

const (
	// FormatAuto prints text on a terminal and JSON lines otherwise.
	FormatAuto Format = "auto"
	// FormatJSON prints one JSON object per line.
	FormatJSON Format = "json"
	// FormatText prints human readable blocks.
	FormatText Format = "text"
)

// ParseFormat validates a format name. Empty means FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatText:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want auto, json or text)", name)
	}
}

// Resolve turns FormatAuto into a concrete format for w.
func (f Format) Resolve(w io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return FormatText
	}
	return FormatJSON
}

// New returns a sink writing records to w in format f.
func New(f Format, w io.Writer) driven.RecordSink {
	if f.Resolve(w) == FormatText {
		return NewTextSink(w)
	}
	return NewJSONLinesSink(w)
}
