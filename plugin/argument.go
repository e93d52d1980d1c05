package plugin

import (
	"sort"

	"github.com/teranos/archon/errors"
)

// ArgumentKind is the declared type of a plugin argument value.
type ArgumentKind string

const (
	KindBool   ArgumentKind = "bool"
	KindInt    ArgumentKind = "int"
	KindString ArgumentKind = "string"
	KindArray  ArgumentKind = "array"
	KindObject ArgumentKind = "object"
)

// Argument describes one configuration option accepted by a plugin.
// Declarations are validated against supplied configuration values before the
// plugin is instantiated.
type Argument struct {
	Name        string
	Description string
	Kind        ArgumentKind
	Required    bool
	// Default is applied when the argument is not supplied.
	// A required argument must not carry a default.
	Default interface{}
}

// Validate checks the declaration itself
func (a Argument) Validate() error {
	switch a.Kind {
	case KindBool, KindInt, KindString, KindArray, KindObject:
	default:
		return errors.NewInvalidArgumentError("argument %q: unknown kind %q", a.Name, a.Kind)
	}
	if a.Required && a.Default != nil {
		return errors.NewInvalidArgumentError("argument %q: required arguments must not declare a default", a.Name)
	}
	if a.Default != nil {
		if err := a.Accepts(a.Default); err != nil {
			return errors.Wrapf(err, "argument %q: default value", a.Name)
		}
	}
	return nil
}

// Accepts checks that a supplied value matches the declared kind.
// Integers arrive from YAML as int or int64 depending on the decoder;
// both are accepted, as are whole float64 values.
func (a Argument) Accepts(value interface{}) error {
	ok := false
	switch a.Kind {
	case KindBool:
		_, ok = value.(bool)
	case KindInt:
		switch v := value.(type) {
		case int, int64:
			ok = true
		case float64:
			ok = v == float64(int64(v))
		}
	case KindString:
		_, ok = value.(string)
	case KindArray:
		_, ok = value.([]interface{})
	case KindObject:
		_, ok = value.(map[string]interface{})
	}
	if !ok {
		return errors.NewInvalidArgumentError("argument %q: expected %s, got %T", a.Name, a.Kind, value)
	}
	return nil
}

// BindArguments validates supplied configuration values against a declaration
// list and returns the effective argument map with defaults applied.
// Unknown names, missing required arguments and kind mismatches are rejected.
func BindArguments(declared []Argument, supplied map[string]interface{}) (map[string]interface{}, error) {
	byName := make(map[string]Argument, len(declared))
	for _, arg := range declared {
		if err := arg.Validate(); err != nil {
			return nil, err
		}
		byName[arg.Name] = arg
	}

	// Deterministic error reporting regardless of map iteration order
	names := make([]string, 0, len(supplied))
	for name := range supplied {
		names = append(names, name)
	}
	sort.Strings(names)

	bound := make(map[string]interface{}, len(declared))
	for _, name := range names {
		arg, known := byName[name]
		if !known {
			return nil, errors.NewInvalidArgumentError("unknown argument %q", name)
		}
		if err := arg.Accepts(supplied[name]); err != nil {
			return nil, err
		}
		bound[name] = supplied[name]
	}

	for _, arg := range declared {
		if _, present := bound[arg.Name]; present {
			continue
		}
		if arg.Required {
			return nil, errors.NewInvalidArgumentError("missing required argument %q", arg.Name)
		}
		if arg.Default != nil {
			bound[arg.Name] = arg.Default
		}
	}
	return bound, nil
}

// IntArg reads an integer argument from a bound map, tolerating the numeric
// types BindArguments accepts.
func IntArg(args map[string]interface{}, name string, fallback int) int {
	switch v := args[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// BoolArg reads a boolean argument from a bound map
func BoolArg(args map[string]interface{}, name string, fallback bool) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return fallback
}

// StringArg reads a string argument from a bound map
func StringArg(args map[string]interface{}, name string, fallback string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return fallback
}
