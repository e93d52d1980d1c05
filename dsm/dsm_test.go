package dsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/archon/errors"
)

func TestNewDesignStructureMatrix(t *testing.T) {
	m, err := NewDesignStructureMatrix([][]float64{
		{0, 1},
		{0, 0},
	}, []string{"core", "cli"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 2, m.Columns())
}

func TestDesignStructureMatrixDefaultEntities(t *testing.T) {
	m, err := NewDesignStructureMatrix([][]float64{
		{0, 1},
		{0, 0},
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, m.Entities)
}

func TestDesignStructureMatrixValidation(t *testing.T) {
	tests := []struct {
		name     string
		data     [][]float64
		entities []string
	}{
		{
			name:     "not square",
			data:     [][]float64{{0, 1, 0}, {0, 0, 1}},
			entities: []string{"a", "b"},
		},
		{
			name:     "ragged rows",
			data:     [][]float64{{0, 1}, {0}},
			entities: []string{"a", "b"},
		},
		{
			name:     "entities mismatch",
			data:     [][]float64{{0, 1}, {0, 0}},
			entities: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDesignStructureMatrix(tt.data, tt.entities, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMatrix))
			assert.True(t, errors.Is(err, ErrDesignStructureMatrix))
		})
	}
}

func TestCategoriesMustMatchEntities(t *testing.T) {
	_, err := NewDesignStructureMatrix([][]float64{
		{0, 1},
		{0, 0},
	}, []string{"a", "b"}, []string{"layer"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number of categories")
}

func TestTransitiveClosure(t *testing.T) {
	// a -> b -> c, no direct a -> c
	m, err := NewDesignStructureMatrix([][]float64{
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, 0},
	}, []string{"a", "b", "c"}, nil)
	require.NoError(t, err)

	closure := m.TransitiveClosure()
	assert.Equal(t, [][]int{
		{0, 1, 1},
		{0, 0, 1},
		{0, 0, 0},
	}, closure)
}

func TestNewDomainMappingMatrix(t *testing.T) {
	m, err := NewDomainMappingMatrix([][]float64{
		{1, 0, 0},
		{0, 1, 1},
	}, []string{"r0", "r1", "c0", "c1", "c2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Columns())

	// Default entities span rows + columns
	m, err = NewDomainMappingMatrix([][]float64{{1, 0}}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, m.Entities)

	_, err = NewDomainMappingMatrix([][]float64{{1, 0}}, []string{"only-one"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDomainMappingMatrix))
}

func TestNewMultipleDomainMatrix(t *testing.T) {
	dsm1, err := NewDesignStructureMatrix([][]float64{{0}}, []string{"a"}, nil)
	require.NoError(t, err)
	dsm2, err := NewDesignStructureMatrix([][]float64{{0}}, []string{"b"}, nil)
	require.NoError(t, err)
	dmm, err := NewDomainMappingMatrix([][]float64{{1}}, []string{"a", "b"}, nil)
	require.NoError(t, err)

	_, err = NewMultipleDomainMatrix([][]interface{}{
		{dsm1, dmm},
		{dmm, dsm2},
	}, []string{"d1", "d2"}, nil)
	require.NoError(t, err)

	// DMM on the diagonal is invalid
	_, err = NewMultipleDomainMatrix([][]interface{}{
		{dmm, dmm},
		{dmm, dsm2},
	}, []string{"d1", "d2"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[0:0]")

	// DSM off the diagonal is invalid
	_, err = NewMultipleDomainMatrix([][]interface{}{
		{dsm1, dsm2},
		{dmm, dsm2},
	}, []string{"d1", "d2"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[0:1]")
}
