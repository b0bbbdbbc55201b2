package diag

import (
	"fmt"
	"strings"

	"csmerge/internal/source"
)

// FormatShort renders one diagnostic as a single line:
// "<severity> <CODE> <path>:<line>:<col> <message>".
// Paths are shown relative to the FileSet base directory when possible.
func FormatShort(d Diagnostic, fs *source.FileSet) string {
	msg := strings.Join(strings.Fields(d.Message), " ")
	sev := strings.ToLower(d.Severity.String())
	if fs == nil {
		return fmt.Sprintf("%s %s %s", sev, d.Code.ID(), msg)
	}
	f := fs.Get(d.Primary.File)
	if f == nil {
		return fmt.Sprintf("%s %s %s", sev, d.Code.ID(), msg)
	}
	path := f.Path
	if base := fs.BaseDir(); base != "" {
		path = f.FormatPath("relative", base)
	}
	start, _ := fs.Resolve(d.Primary)
	return fmt.Sprintf("%s %s %s:%d:%d %s", sev, d.Code.ID(), path, start.Line, start.Col, msg)
}

// FormatShortBag renders every diagnostic of bag with FormatShort, one per line.
func FormatShortBag(bag *Bag, fs *source.FileSet) string {
	if bag == nil {
		return ""
	}
	lines := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		lines = append(lines, FormatShort(d, fs))
	}
	return strings.Join(lines, "\n")
}
