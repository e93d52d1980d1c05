package analysis

import "github.com/teranos/archon/plugin"

// Result records one provider×checker pairing outcome. It is created by the
// engine, appended to the flat list and to its group's list, and never
// mutated afterward.
type Result struct {
	// Group is a back-reference to the group this result belongs to
	Group *Group

	// Provider is nil when the group ran its checkers without providers
	Provider plugin.Provider

	Checker plugin.Checker

	Code plugin.Code

	// Messages is the human-readable outcome text; may span multiple lines
	Messages string
}
