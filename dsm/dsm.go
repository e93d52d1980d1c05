// Package dsm implements the matrix structures archon providers produce:
// the Design Structure Matrix, the Domain Mapping Matrix and the Multiple
// Domain Matrix.
//
// The analysis engine never interprets these; only checkers do. Constructors
// validate shape on creation, so checkers can assume a well-formed matrix.
package dsm

import (
	"strconv"

	"github.com/teranos/archon/errors"
)

// Sentinel errors for matrix validation. Each concrete matrix type wraps the
// generic ErrMatrix so callers can match either the family or the exact kind.
var (
	ErrMatrix                = errors.New("invalid matrix")
	ErrDesignStructureMatrix = errors.Wrap(ErrMatrix, "design structure matrix")
	ErrDomainMappingMatrix   = errors.Wrap(ErrMatrix, "domain mapping matrix")
	ErrMultipleDomainMatrix  = errors.Wrap(ErrMatrix, "multiple domain matrix")
)

func validateRowsLength(rows int, columns func(int) int, sentinel error) error {
	if rows == 0 {
		return nil
	}
	want := columns(0)
	for i := 1; i < rows; i++ {
		if columns(i) != want {
			return errors.Wrap(sentinel, "all rows must have the same length (same number of columns)")
		}
	}
	return nil
}

func validateSquare(rows, columns int, sentinel error) error {
	if rows != columns {
		return errors.Wrapf(sentinel, "number of rows: %d != number of columns: %d in matrix", rows, columns)
	}
	return nil
}

func validateCategories(categories, entities []string, sentinel error) error {
	if len(categories) > 0 && len(categories) != len(entities) {
		return errors.Wrapf(sentinel, "number of categories: %d != number of entities: %d", len(categories), len(entities))
	}
	return nil
}

func defaultEntities(n int) []string {
	entities := make([]string, n)
	for i := range entities {
		entities[i] = strconv.Itoa(i)
	}
	return entities
}

// DesignStructureMatrix is a square dependency matrix: cell [i][j] is non-zero
// when entity i depends on entity j.
type DesignStructureMatrix struct {
	Data       [][]float64
	Entities   []string
	Categories []string
}

// NewDesignStructureMatrix builds and validates a DSM. When entities is nil,
// entities are named "0".."n-1". Categories are optional; when present there
// must be one per entity.
func NewDesignStructureMatrix(data [][]float64, entities, categories []string) (*DesignStructureMatrix, error) {
	rows := len(data)
	if entities == nil {
		entities = defaultEntities(rows)
	}
	m := &DesignStructureMatrix{Data: data, Entities: entities, Categories: categories}

	if err := validateRowsLength(rows, func(i int) int { return len(data[i]) }, ErrDesignStructureMatrix); err != nil {
		return nil, err
	}
	if err := validateSquare(m.Rows(), m.Columns(), ErrDesignStructureMatrix); err != nil {
		return nil, err
	}
	if err := validateCategories(categories, entities, ErrDesignStructureMatrix); err != nil {
		return nil, err
	}
	if len(entities) != rows {
		return nil, errors.Wrapf(ErrDesignStructureMatrix, "number of entities: %d != number of rows: %d", len(entities), rows)
	}
	return m, nil
}

// Rows returns the number of rows
func (m *DesignStructureMatrix) Rows() int { return len(m.Data) }

// Columns returns the number of columns
func (m *DesignStructureMatrix) Columns() int {
	if len(m.Data) == 0 {
		return 0
	}
	return len(m.Data[0])
}

// TransitiveClosure computes the boolean transitive closure of the dependency
// matrix (Warshall): closure[i][j] is 1 when j is reachable from i.
func (m *DesignStructureMatrix) TransitiveClosure() [][]int {
	n := m.Rows()
	closure := make([][]int, n)
	for i := range closure {
		closure[i] = make([]int, n)
		for j, cell := range m.Data[i] {
			if cell != 0 {
				closure[i][j] = 1
			}
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if closure[i][k] == 1 && closure[k][j] == 1 {
					closure[i][j] = 1
				}
			}
		}
	}
	return closure
}

// DomainMappingMatrix maps entities of one domain onto another; it is not
// square, and carries one entity name per row plus one per column.
type DomainMappingMatrix struct {
	Data       [][]float64
	Entities   []string
	Categories []string
}

// NewDomainMappingMatrix builds and validates a DMM. When entities is nil,
// entities are named "0".."rows+columns-1".
func NewDomainMappingMatrix(data [][]float64, entities, categories []string) (*DomainMappingMatrix, error) {
	rows := len(data)
	columns := 0
	if rows > 0 {
		columns = len(data[0])
	}
	if entities == nil {
		entities = defaultEntities(rows + columns)
	}
	m := &DomainMappingMatrix{Data: data, Entities: entities, Categories: categories}

	if err := validateRowsLength(rows, func(i int) int { return len(data[i]) }, ErrDomainMappingMatrix); err != nil {
		return nil, err
	}
	if err := validateCategories(categories, entities, ErrDomainMappingMatrix); err != nil {
		return nil, err
	}
	if len(entities) != rows+columns {
		return nil, errors.Wrapf(ErrDomainMappingMatrix,
			"number of entities: %d != number of rows + number of columns: %d+%d=%d",
			len(entities), rows, columns, rows+columns)
	}
	return m, nil
}

// Rows returns the number of rows
func (m *DomainMappingMatrix) Rows() int { return len(m.Data) }

// Columns returns the number of columns
func (m *DomainMappingMatrix) Columns() int {
	if len(m.Data) == 0 {
		return 0
	}
	return len(m.Data[0])
}

// MultipleDomainMatrix is a square matrix of matrices: diagonal cells hold a
// DSM (or nested MDM) for one domain, off-diagonal cells hold a DMM (or MDM)
// mapping between two domains.
type MultipleDomainMatrix struct {
	// Data cells are *DesignStructureMatrix, *DomainMappingMatrix or
	// *MultipleDomainMatrix, checked on construction.
	Data       [][]interface{}
	Entities   []string
	Categories []string
}

// NewMultipleDomainMatrix builds and validates an MDM.
func NewMultipleDomainMatrix(data [][]interface{}, entities, categories []string) (*MultipleDomainMatrix, error) {
	rows := len(data)
	if entities == nil {
		entities = defaultEntities(rows)
	}
	m := &MultipleDomainMatrix{Data: data, Entities: entities, Categories: categories}

	if err := validateRowsLength(rows, func(i int) int { return len(data[i]) }, ErrMultipleDomainMatrix); err != nil {
		return nil, err
	}
	columns := 0
	if rows > 0 {
		columns = len(data[0])
	}
	if err := validateSquare(rows, columns, ErrMultipleDomainMatrix); err != nil {
		return nil, err
	}
	if err := validateCategories(categories, entities, ErrMultipleDomainMatrix); err != nil {
		return nil, err
	}

	for i, row := range data {
		for j, cell := range row {
			if i == j {
				switch cell.(type) {
				case *DesignStructureMatrix, *MultipleDomainMatrix:
				default:
					return nil, errors.Wrapf(ErrMultipleDomainMatrix,
						"matrix at [%d:%d] is not an instance of DesignStructureMatrix or MultipleDomainMatrix", i, j)
				}
			} else {
				switch cell.(type) {
				case *DomainMappingMatrix, *MultipleDomainMatrix:
				default:
					return nil, errors.Wrapf(ErrMultipleDomainMatrix,
						"matrix at [%d:%d] is not an instance of DomainMappingMatrix or MultipleDomainMatrix", i, j)
				}
			}
		}
	}
	return m, nil
}

// Rows returns the number of rows
func (m *MultipleDomainMatrix) Rows() int { return len(m.Data) }
