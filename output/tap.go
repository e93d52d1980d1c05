package output

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/archon/analysis"
	"github.com/teranos/archon/plugin"
)

// Tracker streams TAP test points to a writer, one line per point, emitting
// a comment header whenever the test suite changes and the plan line on
// Done. Suite and description strings are written as-is; callers must
// sanitize protocol-significant characters themselves.
type Tracker struct {
	w     io.Writer
	count int
	suite string
}

// NewTracker creates a TAP tracker writing to w
func NewTracker(w io.Writer) *Tracker {
	return &Tracker{w: w}
}

// AddOk emits an "ok" test point in the given suite
func (t *Tracker) AddOk(suite, description string) {
	t.header(suite)
	t.count++
	fmt.Fprintf(t.w, "ok %d - %s\n", t.count, description)
}

// AddNotOk emits a "not ok" test point. A non-empty directive is appended
// after "#"; non-empty diagnostics are written verbatim on the following
// lines.
func (t *Tracker) AddNotOk(suite, description, directive, diagnostics string) {
	t.header(suite)
	t.count++
	if directive != "" {
		fmt.Fprintf(t.w, "not ok %d - %s # %s\n", t.count, description, directive)
	} else {
		fmt.Fprintf(t.w, "not ok %d - %s\n", t.count, description)
	}
	if diagnostics != "" {
		fmt.Fprintln(t.w, diagnostics)
	}
}

// Done writes the plan line for all points emitted so far
func (t *Tracker) Done() {
	fmt.Fprintf(t.w, "1..%d\n", t.count)
}

func (t *Tracker) header(suite string) {
	if suite == t.suite {
		return
	}
	t.suite = suite
	fmt.Fprintf(t.w, "# TAP results for %s\n", suite)
}

// WriteTAP renders all group results as a TAP stream.
//
// Suite naming per group: with checkers but no providers, the suite is the
// group name and descriptions are checker names. With more providers than
// checkers, the suite is the first checker's name and descriptions are
// provider names; otherwise (including a tie) the suite is the first
// provider's name and descriptions are checker names. The asymmetry keeps
// the subtest grouping readable whichever axis is larger. A group without
// checkers is invalid: it is skipped with a warning and emits nothing.
func WriteTAP(w io.Writer, groups []*analysis.Group, log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	tracker := NewTracker(w)

	for _, group := range groups {
		var suite string
		var describe func(*analysis.Result) string

		switch {
		case len(group.Providers) == 0 && len(group.Checkers) > 0:
			suite = group.Name
			describe = func(r *analysis.Result) string { return r.Checker.Name() }
		case len(group.Checkers) == 0:
			log.Warnw("invalid analysis group (no checkers), skipping", "group", group.Name)
			continue
		case len(group.Providers) > len(group.Checkers):
			suite = group.Checkers[0].Name()
			describe = func(r *analysis.Result) string { return r.Provider.Name() }
		default:
			suite = group.Providers[0].Name()
			describe = func(r *analysis.Result) string { return r.Checker.Name() }
		}

		for _, result := range group.Results {
			description := describe(result)
			switch result.Code {
			case plugin.Passed:
				tracker.AddOk(suite, description)
			case plugin.Ignored:
				tracker.AddOk(suite, description+" (ALLOWED FAILURE)")
			case plugin.NotImplemented:
				tracker.AddNotOk(suite, description, "TODO implement the test", "")
			case plugin.Failed:
				diagnostics := fmt.Sprintf("  ---\n  message: %s\n  hint: %s\n  ...",
					strings.ReplaceAll(result.Messages, "\n", "\n  message: "),
					result.Checker.Hint())
				tracker.AddNotOk(suite, description, "", diagnostics)
			}
		}
	}

	tracker.Done()
}
