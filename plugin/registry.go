package plugin

import (
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/archon/errors"
)

// ProviderFactory builds a provider from bound arguments
type ProviderFactory func(args map[string]interface{}) (Provider, error)

// CheckerFactory builds a checker from bound arguments
type CheckerFactory func(args map[string]interface{}) (Checker, error)

// ProviderRegistration describes a provider available to configuration
type ProviderRegistration struct {
	Meta      Meta
	Arguments []Argument
	// CoreConstraint is an optional semver constraint on the core plugin
	// API version (e.g. ">= 1.0.0"). Empty means no constraint.
	CoreConstraint string
	New            ProviderFactory
}

// CheckerRegistration describes a checker available to configuration
type CheckerRegistration struct {
	Meta           Meta
	Arguments      []Argument
	CoreConstraint string
	New            CheckerFactory
}

// Registry maps plugin identifiers to factories. Configuration resolves the
// identifiers it reads from YAML through a registry, validates supplied
// arguments against the registered declarations, and instantiates plugins.
type Registry struct {
	mu         sync.RWMutex
	providers  map[string]ProviderRegistration
	checkers   map[string]CheckerRegistration
	apiVersion string
}

// NewRegistry creates a registry gated on the given core API version
func NewRegistry(apiVersion string) *Registry {
	return &Registry{
		providers:  make(map[string]ProviderRegistration),
		checkers:   make(map[string]CheckerRegistration),
		apiVersion: apiVersion,
	}
}

// RegisterProvider registers a provider factory.
// Returns an error on identifier conflicts or incompatible core constraints.
func (r *Registry) RegisterProvider(reg ProviderRegistration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := reg.Meta.Identifier()
	if id == "" {
		return errors.New("provider registration requires an identifier")
	}
	if _, exists := r.providers[id]; exists {
		return errors.Newf("provider already registered: %s", id)
	}
	if err := r.validateConstraint(reg.CoreConstraint); err != nil {
		return errors.Wrapf(err, "provider %s", id)
	}
	r.providers[id] = reg
	return nil
}

// RegisterChecker registers a checker factory.
// Returns an error on identifier conflicts or incompatible core constraints.
func (r *Registry) RegisterChecker(reg CheckerRegistration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := reg.Meta.Identifier()
	if id == "" {
		return errors.New("checker registration requires an identifier")
	}
	if _, exists := r.checkers[id]; exists {
		return errors.Newf("checker already registered: %s", id)
	}
	if err := r.validateConstraint(reg.CoreConstraint); err != nil {
		return errors.Wrapf(err, "checker %s", id)
	}
	r.checkers[id] = reg
	return nil
}

// Provider retrieves a provider registration by identifier
func (r *Registry) Provider(id string) (ProviderRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.providers[id]
	return reg, ok
}

// Checker retrieves a checker registration by identifier
func (r *Registry) Checker(id string) (CheckerRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.checkers[id]
	return reg, ok
}

// NewProvider binds arguments and instantiates the provider with the given
// identifier
func (r *Registry) NewProvider(id string, args map[string]interface{}) (Provider, error) {
	reg, ok := r.Provider(id)
	if !ok {
		return nil, errors.NewUnknownPluginError("provider", id)
	}
	bound, err := BindArguments(reg.Arguments, args)
	if err != nil {
		return nil, errors.Wrapf(err, "provider %s", id)
	}
	return reg.New(bound)
}

// NewChecker binds arguments and instantiates the checker with the given
// identifier
func (r *Registry) NewChecker(id string, args map[string]interface{}) (Checker, error) {
	reg, ok := r.Checker(id)
	if !ok {
		return nil, errors.NewUnknownPluginError("checker", id)
	}
	bound, err := BindArguments(reg.Arguments, args)
	if err != nil {
		return nil, errors.Wrapf(err, "checker %s", id)
	}
	return reg.New(bound)
}

// Providers returns all provider registrations sorted by identifier
func (r *Registry) Providers() []ProviderRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]ProviderRegistration, 0, len(r.providers))
	for _, reg := range r.providers {
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].Meta.ID < regs[j].Meta.ID })
	return regs
}

// Checkers returns all checker registrations sorted by identifier
func (r *Registry) Checkers() []CheckerRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]CheckerRegistration, 0, len(r.checkers))
	for _, reg := range r.checkers {
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].Meta.ID < regs[j].Meta.ID })
	return regs
}

// validateConstraint checks a plugin's core constraint against the registry's
// API version
func (r *Registry) validateConstraint(constraint string) error {
	if constraint == "" {
		// No version constraint specified
		return nil
	}

	apiVer, err := semver.NewVersion(r.apiVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid core API version %s", r.apiVersion)
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %s", constraint)
	}

	if !c.Check(apiVer) {
		return errors.Newf("plugin requires core API %s, but running %s", constraint, r.apiVersion)
	}
	return nil
}
