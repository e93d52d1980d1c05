// Package config loads the archon analysis configuration.
//
// Configuration is YAML read through Viper, with ARCHON_* environment
// overrides. It names analysis groups and, per group, the provider and
// checker plugins to instantiate with their arguments. Plugin identifiers
// are resolved through a plugin.Registry; argument validation happens here,
// before instantiation, so the engine only ever sees validated plugins.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/archon/analysis"
	"github.com/teranos/archon/errors"
	"github.com/teranos/archon/plugin"
)

// DefaultFileName is the configuration file archon looks for when no
// explicit path is given
const DefaultFileName = "archon.yaml"

// File is the root of an archon configuration file
type File struct {
	Groups []GroupConfig `mapstructure:"analysis_groups"`
}

// GroupConfig describes one analysis group
type GroupConfig struct {
	Name        string         `mapstructure:"name"`
	Description string         `mapstructure:"description"`
	Providers   []PluginConfig `mapstructure:"providers"`
	Checkers    []PluginConfig `mapstructure:"checkers"`
}

// PluginConfig names a registered plugin and supplies its arguments
type PluginConfig struct {
	Identifier string                 `mapstructure:"identifier"`
	Arguments  map[string]interface{} `mapstructure:"arguments"`
}

// Load reads the configuration from path. With an empty path, the file is
// discovered by walking up from the working directory.
func Load(path string) (*File, error) {
	if path == "" {
		path = Discover()
		if path == "" {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "no %s found in this directory or any parent", DefaultFileName)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ARCHON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	var file File
	if err := v.Unmarshal(&file); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config file %s", path)
	}

	if err := file.validate(); err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	return &file, nil
}

// Discover searches for the default config file by walking up the directory
// tree from the working directory. Returns the path of the first file found,
// or empty string.
func Discover() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, DefaultFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func (f *File) validate() error {
	if len(f.Groups) == 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "no analysis_groups defined")
	}
	for i, group := range f.Groups {
		if group.Name == "" {
			return errors.Wrapf(errors.ErrInvalidConfig, "analysis_groups[%d]: missing name", i)
		}
		for _, p := range group.Providers {
			if p.Identifier == "" {
				return errors.Wrapf(errors.ErrInvalidConfig, "group %q: provider with empty identifier", group.Name)
			}
		}
		for _, c := range group.Checkers {
			if c.Identifier == "" {
				return errors.Wrapf(errors.ErrInvalidConfig, "group %q: checker with empty identifier", group.Name)
			}
		}
	}
	return nil
}

// Build resolves every configured plugin through the registry, binds and
// validates its arguments, and returns the groups ready for the engine.
func (f *File) Build(registry *plugin.Registry) ([]*analysis.Group, error) {
	groups := make([]*analysis.Group, 0, len(f.Groups))
	for _, gc := range f.Groups {
		group := &analysis.Group{
			Name:        gc.Name,
			Description: gc.Description,
		}

		for _, pc := range gc.Providers {
			provider, err := registry.NewProvider(pc.Identifier, pc.Arguments)
			if err != nil {
				return nil, errors.Wrapf(err, "group %q", gc.Name)
			}
			group.Providers = append(group.Providers, provider)
		}
		for _, cc := range gc.Checkers {
			checker, err := registry.NewChecker(cc.Identifier, cc.Arguments)
			if err != nil {
				return nil, errors.Wrapf(err, "group %q", gc.Name)
			}
			group.Checkers = append(group.Checkers, checker)
		}

		groups = append(groups, group)
	}
	return groups, nil
}
