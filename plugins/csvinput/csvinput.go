// Package csvinput provides the csv.Input provider: it reads a Design
// Structure Matrix from a CSV file (or stdin) whose header row names the
// entities and whose body is the square dependency matrix.
package csvinput

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/teranos/archon/dsm"
	"github.com/teranos/archon/errors"
	"github.com/teranos/archon/plugin"
)

// Identifier is the registry key of this provider
const Identifier = "csv.Input"

var meta = plugin.Meta{
	ID:      Identifier,
	Title:   "CSV input",
	Summary: "Reads a design structure matrix from a CSV file or standard input.",
}

var arguments = []plugin.Argument{
	{
		Name:        "file",
		Description: `Path of the CSV file, or "-" for standard input.`,
		Kind:        plugin.KindString,
		Required:    true,
	},
	{
		Name:        "delimiter",
		Description: "Field delimiter, a single character.",
		Kind:        plugin.KindString,
		Default:     ",",
	},
}

// Registration describes this provider for a plugin registry
func Registration() plugin.ProviderRegistration {
	return plugin.ProviderRegistration{
		Meta:           meta,
		Arguments:      arguments,
		CoreConstraint: ">= 1.0.0",
		New:            New,
	}
}

// Provider reads a DSM from CSV
type Provider struct {
	plugin.Meta
	file      string
	delimiter rune
}

// New builds the provider from bound arguments
func New(args map[string]interface{}) (plugin.Provider, error) {
	delimiter := plugin.StringArg(args, "delimiter", ",")
	runes := []rune(delimiter)
	if len(runes) != 1 {
		return nil, errors.NewInvalidArgumentError("argument %q: delimiter must be a single character, got %q", "delimiter", delimiter)
	}
	return &Provider{
		Meta:      meta,
		file:      plugin.StringArg(args, "file", ""),
		delimiter: runes[0],
	}, nil
}

// Arguments declares the accepted configuration options
func (p *Provider) Arguments() []plugin.Argument { return arguments }

// Run reads and parses the matrix. The first record names the entities; each
// following record is one matrix row of numeric cells.
func (p *Provider) Run() (interface{}, error) {
	var reader io.Reader
	if p.file == "-" {
		reader = os.Stdin
	} else {
		f, err := os.Open(p.file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open matrix file %s", p.file)
		}
		defer f.Close()
		reader = f
	}
	return p.parse(reader)
}

func (p *Provider) parse(reader io.Reader) (interface{}, error) {
	r := csv.NewReader(reader)
	r.Comma = p.delimiter
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse CSV matrix")
	}
	if len(records) < 2 {
		return nil, errors.WithHint(
			errors.New("CSV matrix needs a header row and at least one data row"),
			"the first row must name the entities")
	}

	entities := records[0]
	data := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make([]float64, len(record))
		for j, cell := range record {
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "cell [%d:%d] is not numeric", i, j)
			}
			row[j] = value
		}
		data = append(data, row)
	}

	return dsm.NewDesignStructureMatrix(data, entities, nil)
}
