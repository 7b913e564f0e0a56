package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/smileynet/contactform/internal/contact"
)

// IsTerminal reports whether w is connected to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainNotice writes the visible notice as a single text line.
// Nothing is written while both regions are hidden.
func PlainNotice(w io.Writer, n contact.Notice) error {
	var err error
	switch n.Kind {
	case contact.NoticeSuccess:
		_, err = fmt.Fprintf(w, "%s %s\n", indicator(n.Kind), SuccessText)
	case contact.NoticeError:
		_, err = fmt.Fprintf(w, "%s %s\n", indicator(n.Kind), n.Detail)
	}
	return err
}

// indicator returns the Unicode indicator for a notice kind.
func indicator(kind contact.NoticeKind) string {
	switch kind {
	case contact.NoticeSuccess:
		return "✓"
	case contact.NoticeError:
		return "✗"
	default:
		return "○"
	}
}
