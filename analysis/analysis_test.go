package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/archon/plugin"
)

type fakeProvider struct {
	plugin.Meta
	data  interface{}
	err   error
	panic bool
	runs  int
}

func (p *fakeProvider) Arguments() []plugin.Argument { return nil }

func (p *fakeProvider) Run() (interface{}, error) {
	p.runs++
	if p.panic {
		panic("provider exploded")
	}
	return p.data, p.err
}

type fakeChecker struct {
	plugin.Meta
	hint  string
	run   func(data interface{}) plugin.Outcome
	panic bool
	seen  []interface{}
}

func (c *fakeChecker) Arguments() []plugin.Argument { return nil }
func (c *fakeChecker) Hint() string                 { return c.hint }

func (c *fakeChecker) Run(data interface{}) plugin.Outcome {
	c.seen = append(c.seen, data)
	if c.panic {
		panic("checker exploded")
	}
	if c.run != nil {
		return c.run(data)
	}
	return plugin.Outcome{Code: plugin.Passed}
}

func passingChecker(id string) *fakeChecker {
	return &fakeChecker{Meta: plugin.Meta{ID: id}}
}

func TestRunPairsEveryProviderWithEveryChecker(t *testing.T) {
	p1 := &fakeProvider{Meta: plugin.Meta{ID: "p1"}, data: "d1"}
	p2 := &fakeProvider{Meta: plugin.Meta{ID: "p2"}, data: "d2"}
	c1 := passingChecker("c1")
	c2 := passingChecker("c2")
	c3 := passingChecker("c3")

	group := &Group{
		Name:      "pairing",
		Providers: []plugin.Provider{p1, p2},
		Checkers:  []plugin.Checker{c1, c2, c3},
	}
	a := New([]*Group{group}, nil)
	a.Run(false)

	require.Len(t, a.Results, 6)
	require.Len(t, group.Results, 6)
	assert.Equal(t, 1, p1.runs)
	assert.Equal(t, 1, p2.runs)

	// Provider-major, checker-minor order
	var order []string
	for _, r := range a.Results {
		order = append(order, fmt.Sprintf("%s/%s", r.Provider.Identifier(), r.Checker.Identifier()))
		assert.Same(t, group, r.Group)
	}
	assert.Equal(t, []string{"p1/c1", "p1/c2", "p1/c3", "p2/c1", "p2/c2", "p2/c3"}, order)

	// Each checker saw each provider's data in order
	assert.Equal(t, []interface{}{"d1", "d2"}, c1.seen)
}

func TestRunWithoutProviders(t *testing.T) {
	c1 := passingChecker("c1")
	c2 := passingChecker("c2")
	group := &Group{Name: "no-data", Checkers: []plugin.Checker{c1, c2}}

	a := New([]*Group{group}, nil)
	a.Run(false)

	require.Len(t, a.Results, 2)
	for _, r := range a.Results {
		assert.Nil(t, r.Provider)
	}
	assert.Equal(t, []interface{}{nil}, c1.seen)
}

func TestSuccessful(t *testing.T) {
	a := New(nil, nil)
	a.Run(false)
	assert.True(t, a.Successful(), "empty result set is successful")

	failing := &fakeChecker{Meta: plugin.Meta{ID: "fail"}, run: func(interface{}) plugin.Outcome {
		return plugin.Outcome{Code: plugin.Failed, Messages: "bad"}
	}}
	ignored := &fakeChecker{Meta: plugin.Meta{ID: "ignored"}, run: func(interface{}) plugin.Outcome {
		return plugin.Outcome{Code: plugin.Ignored, Messages: "allowed"}
	}}
	todo := &fakeChecker{Meta: plugin.Meta{ID: "todo"}, run: func(interface{}) plugin.Outcome {
		return plugin.Outcome{Code: plugin.NotImplemented}
	}}

	a = New([]*Group{{Name: "g", Checkers: []plugin.Checker{ignored, todo}}}, nil)
	a.Run(false)
	assert.True(t, a.Successful(), "only Failed counts against success")
	assert.Equal(t, 0, a.FailureCount())

	a = New([]*Group{{Name: "g", Checkers: []plugin.Checker{ignored, failing}}}, nil)
	a.Run(false)
	assert.False(t, a.Successful())
	assert.Equal(t, 1, a.FailureCount())
}

func TestProviderErrorStillRunsCheckers(t *testing.T) {
	p := &fakeProvider{Meta: plugin.Meta{ID: "broken"}, err: fmt.Errorf("boom")}
	c := passingChecker("c")
	group := &Group{Name: "g", Providers: []plugin.Provider{p}, Checkers: []plugin.Checker{c}}

	a := New([]*Group{group}, nil)
	a.Run(false)

	require.Len(t, a.Results, 1)
	assert.Equal(t, []interface{}{nil}, c.seen)
}

func TestProviderPanicIsTrapped(t *testing.T) {
	p := &fakeProvider{Meta: plugin.Meta{ID: "panicky"}, panic: true}
	c := passingChecker("c")
	group := &Group{Name: "g", Providers: []plugin.Provider{p}, Checkers: []plugin.Checker{c}}

	a := New([]*Group{group}, nil)
	require.NotPanics(t, func() { a.Run(false) })

	require.Len(t, a.Results, 1)
	assert.Equal(t, []interface{}{nil}, c.seen)
}

func TestCheckerPanicBecomesFailedResult(t *testing.T) {
	bad := &fakeChecker{Meta: plugin.Meta{ID: "bad"}, panic: true}
	good := passingChecker("good")
	group := &Group{Name: "g", Checkers: []plugin.Checker{bad, good}}

	a := New([]*Group{group}, nil)
	require.NotPanics(t, func() { a.Run(false) })

	require.Len(t, a.Results, 2)
	assert.Equal(t, plugin.Failed, a.Results[0].Code)
	assert.Contains(t, a.Results[0].Messages, "checker panicked")
	assert.Equal(t, plugin.Passed, a.Results[1].Code)
	assert.False(t, a.Successful())
}

func TestRerunReplacesResults(t *testing.T) {
	p := &fakeProvider{Meta: plugin.Meta{ID: "p"}, data: map[string]bool{"ok": true}}
	c := &fakeChecker{Meta: plugin.Meta{ID: "c"}, run: func(data interface{}) plugin.Outcome {
		if m, ok := data.(map[string]bool); ok && m["ok"] {
			return plugin.Outcome{Code: plugin.Passed}
		}
		return plugin.Outcome{Code: plugin.Failed, Messages: "bad"}
	}}
	group := &Group{Name: "naming", Providers: []plugin.Provider{p}, Checkers: []plugin.Checker{c}}

	a := New([]*Group{group}, nil)
	a.Run(false)
	require.Len(t, a.Results, 1)
	assert.Equal(t, plugin.Passed, a.Results[0].Code)
	assert.Equal(t, "", a.Results[0].Messages)

	a.Run(false)
	assert.Len(t, a.Results, 1, "second run replaces, not accumulates")
	assert.Len(t, group.Results, 1)
	assert.Equal(t, 2, p.runs)
}

type countingPrinter struct {
	printed []*Result
}

func (p *countingPrinter) Print(r *Result) { p.printed = append(p.printed, r) }

func TestVerboseStreamsThroughPrinter(t *testing.T) {
	group := &Group{Name: "g", Checkers: []plugin.Checker{passingChecker("c1"), passingChecker("c2")}}
	a := New([]*Group{group}, nil)

	printer := &countingPrinter{}
	a.Printer = printer

	a.Run(false)
	assert.Empty(t, printer.printed)

	a.Run(true)
	require.Len(t, printer.printed, 2)
	assert.Same(t, a.Results[0], printer.printed[0])
}
