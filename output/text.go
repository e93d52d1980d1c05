// Package output renders analysis results: a console printer, a streaming
// TAP emitter, and a JSON report.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/archon/analysis"
	"github.com/teranos/archon/plugin"
)

// Printer renders single results as human-readable text. It is a pure
// function of each result and safe to call interleaved with the engine loop
// (verbose streaming) or in a final pass.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print renders one result. Passed results get a single line; Failed results
// additionally show the message body and the checker's hint.
func (p *Printer) Print(r *analysis.Result) {
	label := r.Checker.Name()
	if r.Provider != nil {
		label = fmt.Sprintf("%s on %s", r.Checker.Name(), r.Provider.Name())
	}

	switch r.Code {
	case plugin.Passed:
		fmt.Fprintf(p.w, "%s %s\n", pterm.Green("✓"), label)
	case plugin.Ignored:
		fmt.Fprintf(p.w, "%s %s (allowed failure)\n", pterm.Yellow("−"), label)
	case plugin.NotImplemented:
		fmt.Fprintf(p.w, "%s %s (not implemented)\n", pterm.Cyan("?"), label)
	case plugin.Failed:
		fmt.Fprintf(p.w, "%s %s\n", pterm.Red("✗"), label)
		if r.Messages != "" {
			for _, line := range strings.Split(r.Messages, "\n") {
				fmt.Fprintf(p.w, "  %s\n", line)
			}
		}
		if hint := r.Checker.Hint(); hint != "" {
			fmt.Fprintf(p.w, "  %s %s\n", pterm.Gray("hint:"), hint)
		}
	}
}

// PrintAll renders the flat result list in a final pass
func (p *Printer) PrintAll(results []*analysis.Result) {
	for _, r := range results {
		p.Print(r)
	}
}
