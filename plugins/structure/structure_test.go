package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/archon/dsm"
	"github.com/teranos/archon/plugin"
)

func matrix(t *testing.T, data [][]float64, entities []string) *dsm.DesignStructureMatrix {
	t.Helper()
	m, err := dsm.NewDesignStructureMatrix(data, entities, nil)
	require.NoError(t, err)
	return m
}

func TestLayeredArchitecturePasses(t *testing.T) {
	checker, err := NewLayeredArchitecture(nil)
	require.NoError(t, err)

	// Strictly lower-triangular: everyone depends only on higher layers
	m := matrix(t, [][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 0},
	}, []string{"domain", "service", "cli"})

	outcome := checker.Run(m)
	assert.Equal(t, plugin.Passed, outcome.Code)
	assert.Empty(t, outcome.Messages)
}

func TestLayeredArchitectureReportsUpwardDependencies(t *testing.T) {
	checker, err := NewLayeredArchitecture(nil)
	require.NoError(t, err)

	m := matrix(t, [][]float64{
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, 0},
	}, []string{"domain", "service", "cli"})

	outcome := checker.Run(m)
	assert.Equal(t, plugin.Failed, outcome.Code)
	assert.Contains(t, outcome.Messages, "domain depends on service")
	assert.Contains(t, outcome.Messages, "service depends on cli")
	assert.NotEmpty(t, checker.Hint())
}

func TestIgnoreDowngradesFailureToAllowed(t *testing.T) {
	checker, err := NewLayeredArchitecture(map[string]interface{}{"ignore": true})
	require.NoError(t, err)

	m := matrix(t, [][]float64{
		{0, 1},
		{0, 0},
	}, []string{"a", "b"})

	outcome := checker.Run(m)
	assert.Equal(t, plugin.Ignored, outcome.Code)
	assert.Contains(t, outcome.Messages, "a depends on b")
}

func TestCheckersFailGracefullyWithoutData(t *testing.T) {
	layered, err := NewLayeredArchitecture(nil)
	require.NoError(t, err)
	economy, err := NewEconomyOfMechanism(nil)
	require.NoError(t, err)

	for _, checker := range []plugin.Checker{layered, economy} {
		outcome := checker.Run(nil)
		assert.Equal(t, plugin.Failed, outcome.Code)
		assert.Equal(t, "no data provided", outcome.Messages)

		outcome = checker.Run("not a matrix")
		assert.Equal(t, plugin.Failed, outcome.Code)
		assert.Contains(t, outcome.Messages, "expected a design structure matrix")
	}
}

func TestEconomyOfMechanism(t *testing.T) {
	// Chain a -> b -> c: closure has 3 reachable pairs
	m := matrix(t, [][]float64{
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, 0},
	}, []string{"a", "b", "c"})

	checker, err := NewEconomyOfMechanism(nil)
	require.NoError(t, err)
	outcome := checker.Run(m)
	assert.Equal(t, plugin.Passed, outcome.Code, "3 pairs within default 2×3")

	strict, err := NewEconomyOfMechanism(map[string]interface{}{"simplicity_factor": 0})
	require.NoError(t, err)
	outcome = strict.Run(m)
	assert.Equal(t, plugin.Failed, outcome.Code)
	assert.Contains(t, outcome.Messages, "3 reachable dependency pairs exceed the allowed 0")
}

func TestOpenDesignIsNotImplemented(t *testing.T) {
	checker, err := NewOpenDesign(nil)
	require.NoError(t, err)
	outcome := checker.Run(nil)
	assert.Equal(t, plugin.NotImplemented, outcome.Code)
}

func TestRegistrationsBindInRegistry(t *testing.T) {
	registry := plugin.NewRegistry("1.0.0")
	require.NoError(t, registry.RegisterChecker(LayeredArchitectureRegistration()))
	require.NoError(t, registry.RegisterChecker(EconomyOfMechanismRegistration()))
	require.NoError(t, registry.RegisterChecker(OpenDesignRegistration()))

	checker, err := registry.NewChecker(EconomyOfMechanismID, map[string]interface{}{"simplicity_factor": 5})
	require.NoError(t, err)
	assert.Equal(t, "Economy of mechanism", checker.Name())

	_, err = registry.NewChecker(LayeredArchitectureID, map[string]interface{}{"factor": 1})
	require.Error(t, err, "unknown argument rejected")
}
