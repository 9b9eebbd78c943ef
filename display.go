package main

import (
	"html"
	"io"
	"strings"

	"github.com/jcorbin/godc/internal/flushio"
)

// Display renders the text produced by a Machine. The machine turns off the
// newline flag around prints that must not end their line, restoring it
// straight after.
type Display interface {
	WriteText(text string) error
	SetNewline(newline bool)
}

type flusher interface{ Flush() error }

// consoleDisplay writes each text followed by a line feed, unless the newline
// flag is off.
type consoleDisplay struct {
	out     flushio.WriteFlusher
	newline bool
}

func newConsoleDisplay(w io.Writer) *consoleDisplay {
	return &consoleDisplay{out: flushio.NewWriteFlusher(w), newline: true}
}

func (con *consoleDisplay) SetNewline(newline bool) { con.newline = newline }

func (con *consoleDisplay) WriteText(text string) error {
	if con.newline {
		text += "\n"
	}
	_, err := io.WriteString(con.out, text)
	return err
}

func (con *consoleDisplay) Flush() error { return con.out.Flush() }

// markupDisplay writes HTML: each text opens a new paragraph, unless the text
// before it was written with the newline flag off, in which case it continues
// that paragraph. Line feeds within a text become <br> elements.
type markupDisplay struct {
	out     flushio.WriteFlusher
	newline bool
	sameP   bool
	open    bool
}

func newMarkupDisplay(w io.Writer) *markupDisplay {
	return &markupDisplay{out: flushio.NewWriteFlusher(w), newline: true}
}

func (mark *markupDisplay) SetNewline(newline bool) { mark.newline = newline }

func (mark *markupDisplay) WriteText(text string) error {
	var buf strings.Builder
	if !mark.sameP {
		if mark.open {
			buf.WriteString("</p>\n")
		}
		buf.WriteString("<p>")
		mark.open = true
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			buf.WriteString("<br>")
		}
		buf.WriteString(html.EscapeString(line))
	}
	mark.sameP = !mark.newline
	_, err := io.WriteString(mark.out, buf.String())
	return err
}

func (mark *markupDisplay) Flush() error { return mark.out.Flush() }

// Close ends any open paragraph.
func (mark *markupDisplay) Close() error {
	if mark.open {
		mark.open, mark.sameP = false, false
		if _, err := io.WriteString(mark.out, "</p>\n"); err != nil {
			return err
		}
	}
	return mark.out.Flush()
}
