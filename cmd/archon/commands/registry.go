package commands

import (
	"github.com/teranos/archon/plugin"
	"github.com/teranos/archon/plugins/csvinput"
	"github.com/teranos/archon/plugins/structure"
	"github.com/teranos/archon/version"
)

// newRegistry builds the registry of built-in plugins gated on the core
// plugin API version
func newRegistry() (*plugin.Registry, error) {
	registry := plugin.NewRegistry(version.API)

	if err := registry.RegisterProvider(csvinput.Registration()); err != nil {
		return nil, err
	}
	for _, reg := range []plugin.CheckerRegistration{
		structure.LayeredArchitectureRegistration(),
		structure.EconomyOfMechanismRegistration(),
		structure.OpenDesignRegistration(),
	} {
		if err := registry.RegisterChecker(reg); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
