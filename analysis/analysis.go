// Package analysis contains the archon execution engine: it pairs every
// provider of a group with every checker of that group and records one
// Result per pairing.
package analysis

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/teranos/archon/plugin"
)

// Group is a named bundle of providers and checkers sharing one result list.
// Groups are built by the config package before any run; Results is rebuilt
// at the start of each Analysis.Run.
type Group struct {
	Name        string
	Description string
	Providers   []plugin.Provider
	Checkers    []plugin.Checker
	Results     []*Result
}

// ResultPrinter renders a single result as it is produced. The output
// package provides the console implementation.
type ResultPrinter interface {
	Print(*Result)
}

// Analysis runs configured groups and accumulates their results.
//
// Execution is strictly sequential: group order, then provider order, then
// checker order. Run clears and rebuilds all result state, so an Analysis is
// not safe for concurrent Run calls without external synchronization.
type Analysis struct {
	Groups []*Group

	// Results is the flat result list across all groups, in execution order
	Results []*Result

	// Printer streams results during a verbose run; may be nil
	Printer ResultPrinter

	log *zap.SugaredLogger
}

// New creates an analysis over the given groups with an injected logger
func New(groups []*Group, log *zap.SugaredLogger) *Analysis {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Analysis{Groups: groups, log: log}
}

// Run executes all groups.
//
// For each group with providers, every provider is run once and every checker
// is run against that provider's data, yielding providers×checkers results in
// provider-major order. A group without providers runs each checker once with
// nil data. Results are appended to both the flat list and the group's list;
// with verbose, each is printed as soon as it exists.
//
// A provider failure does not stop its checkers: they receive nil data and
// are expected to fail gracefully. A panicking provider or checker is trapped
// per pairing and recorded as a Failed result, so one broken plugin cannot
// abort the analysis.
func (a *Analysis) Run(verbose bool) {
	a.Results = nil

	for _, group := range a.Groups {
		group.Results = nil

		if len(group.Providers) > 0 {
			for _, provider := range group.Providers {
				a.log.Infow("running provider", "provider", displayKey(provider))
				data := a.runProvider(provider)
				for _, checker := range group.Checkers {
					a.record(group, provider, checker, data, verbose)
				}
			}
		} else {
			for _, checker := range group.Checkers {
				a.record(group, nil, checker, nil, verbose)
			}
		}
	}
}

// Successful reports whether the last run produced no Failed result.
// An empty result set is successful.
func (a *Analysis) Successful() bool {
	for _, result := range a.Results {
		if result.Code == plugin.Failed {
			return false
		}
	}
	return true
}

// FailureCount returns the number of Failed results from the last run
func (a *Analysis) FailureCount() int {
	count := 0
	for _, result := range a.Results {
		if result.Code == plugin.Failed {
			count++
		}
	}
	return count
}

func (a *Analysis) record(group *Group, provider plugin.Provider, checker plugin.Checker, data interface{}, verbose bool) {
	prefix := ""
	if provider == nil {
		prefix = "no-data-"
	}
	a.log.Infow("running "+prefix+"checker", "checker", displayKey(checker))

	outcome := a.runChecker(checker, data)
	result := &Result{
		Group:    group,
		Provider: provider,
		Checker:  checker,
		Code:     outcome.Code,
		Messages: outcome.Messages,
	}
	a.Results = append(a.Results, result)
	group.Results = append(group.Results, result)
	if verbose && a.Printer != nil {
		a.Printer.Print(result)
	}
}

// runProvider invokes the provider, trapping panics. On failure the group's
// checkers still run with nil data.
func (a *Analysis) runProvider(provider plugin.Provider) (data interface{}) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorw("provider panicked", "provider", displayKey(provider), "panic", fmt.Sprint(r))
			data = nil
		}
	}()

	data, err := provider.Run()
	if err != nil {
		a.log.Errorw("provider failed to produce data", "provider", displayKey(provider), "error", err)
	}
	return data
}

// runChecker invokes the checker, converting a panic into a Failed outcome
func (a *Analysis) runChecker(checker plugin.Checker, data interface{}) (outcome plugin.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = plugin.Outcome{
				Code:     plugin.Failed,
				Messages: fmt.Sprintf("checker panicked: %v", r),
			}
		}
	}()

	return checker.Run(data)
}

// displayKey prefers the identifier for logs, like configuration does, and
// falls back to the display name
func displayKey(p plugin.Identifiable) string {
	if id := p.Identifier(); id != "" {
		return id
	}
	return p.Name()
}
