// Package render displays the catalog on the console. It is thin, stateless
// view glue over the catalog rows; the four methods map to the observable
// view states: loading, populated, empty and errored.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/turbospeed/speedfiles/pkg/catalog"
)

// Renderer is implemented by anything able to display the catalog states.
type Renderer interface {
	Loading()
	Populated(rows []catalog.Row)
	Empty()
	Failed(err error)
}

// Console renders the catalog as plain rows on an io.Writer, one line per
// entry: the formatted size, the short URL and the raw token.
type Console struct {
	out     io.Writer
	size    *color.Color
	link    *color.Color
	errText *color.Color
}

// NewConsole returns a Console writing to out. With noColor set, rows are
// rendered without ANSI escapes regardless of terminal detection.
func NewConsole(out io.Writer, noColor bool) *Console {
	c := &Console{
		out:     out,
		size:    color.New(color.FgGreen, color.Bold),
		link:    color.New(color.FgCyan),
		errText: color.New(color.FgRed),
	}
	if noColor {
		c.size.DisableColor()
		c.link.DisableColor()
		c.errText.DisableColor()
	}
	return c
}

// Loading displays the initial loading indicator.
func (c *Console) Loading() {
	fmt.Fprintln(c.out, "loading file list...")
}

// Populated displays one row per catalog entry.
func (c *Console) Populated(rows []catalog.Row) {
	for _, row := range rows {
		fmt.Fprintf(c.out, "%s  %s  (%s)\n",
			c.size.Sprintf("%8s", row.FormattedSize),
			c.link.Sprint(row.URL),
			row.RawToken,
		)
	}
}

// Empty displays the no-files message.
func (c *Console) Empty() {
	fmt.Fprintln(c.out, "no files available")
}

// Failed displays a generic error message. The underlying cause goes to the
// logs, not the view.
func (c *Console) Failed(_ error) {
	fmt.Fprintln(c.out, c.errText.Sprint("could not load the file list, try again later"))
}
