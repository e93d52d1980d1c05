// Package plugin defines the archon plugin contract.
//
// An analysis is assembled from two kinds of plugins:
//   - Providers produce data, typically a matrix from the dsm package.
//   - Checkers validate that data against a rule and report an Outcome.
//
// The engine pairs every provider of a group with every checker of that
// group. Plugins are constructed once per analysis from validated arguments
// and invoked synchronously; they never run concurrently.
package plugin

// Identifiable is implemented by anything that can be named in configuration
// and output: providers, checkers, and the registry entries describing them.
type Identifiable interface {
	// Identifier returns the stable machine key (may be empty for ad-hoc plugins)
	Identifier() string

	// Name returns the display name, falling back to the identifier
	Name() string

	// Description returns a human-readable description
	Description() string
}

// Meta is the canonical Identifiable implementation, embedded by concrete
// plugins and carried in registry entries.
type Meta struct {
	// ID is the stable machine key (e.g. "structure.LayeredArchitecture")
	ID string

	// Title is the display name; when empty, Name() falls back to ID
	Title string

	// Summary is a human-readable description
	Summary string
}

// Identifier returns the stable machine key
func (m Meta) Identifier() string { return m.ID }

// Name returns the display name, falling back to the identifier
func (m Meta) Name() string {
	if m.Title == "" {
		return m.ID
	}
	return m.Title
}

// Description returns the human-readable description
func (m Meta) Description() string { return m.Summary }

// Provider produces the data a group's checkers validate.
type Provider interface {
	Identifiable

	// Arguments declares the configuration options this provider accepts
	Arguments() []Argument

	// Run produces the data. On error the engine logs the failure and still
	// runs the group's checkers with nil data; checkers must handle that
	// rather than crash.
	Run() (interface{}, error)
}

// Checker validates data produced by a provider.
type Checker interface {
	Identifiable

	// Arguments declares the configuration options this checker accepts
	Arguments() []Argument

	// Hint returns free-form remediation text, shown only in failure diagnostics
	Hint() string

	// Run validates the data, which is nil when the group has no providers.
	// Expected validation failures are reported through the Outcome code,
	// never by panicking: Failed for a genuine violation, Ignored for an
	// allowed failure, NotImplemented for a checker not yet authored.
	Run(data interface{}) Outcome
}

// Code classifies a checker outcome.
type Code int

const (
	// NotImplemented is the placeholder outcome for checkers not yet authored
	NotImplemented Code = iota
	// Ignored is an allowed failure that does not fail the overall run
	Ignored
	// Failed is a genuine rule violation
	Failed
	// Passed means the rule holds
	Passed
)

// String returns the stable name of the code, used in JSON output
func (c Code) String() string {
	switch c {
	case NotImplemented:
		return "not_implemented"
	case Ignored:
		return "ignored"
	case Failed:
		return "failed"
	case Passed:
		return "passed"
	default:
		return "unknown"
	}
}

// Outcome is what a checker run reports: a code plus human-readable messages
// (possibly multi-line, empty on success).
type Outcome struct {
	Code     Code
	Messages string
}
