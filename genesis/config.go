// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/mvm/bytecode"
	"github.com/vechain/mvm/move"
)

// Config lists the bundles of a genesis, e.g.
//
//	bundles:
//	  - address: "0x1"
//	    path: stdlib.mv
type Config struct {
	Bundles []BundleConfig `yaml:"bundles"`

	dir string
}

// BundleConfig is one bundle file. Relative paths are resolved against the
// directory of the config file.
type BundleConfig struct {
	Address move.Address `yaml:"address"`
	Path    string       `yaml:"path"`
}

// LoadConfig reads a YAML genesis config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal genesis config")
	}
	if len(cfg.Bundles) == 0 {
		return nil, errors.New("genesis config lists no bundles")
	}
	cfg.dir = filepath.Dir(path)
	return &cfg, nil
}

func (c *Config) read(b BundleConfig) ([]byte, error) {
	path := b.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "bundle %v", b.Address.ShortString())
	}
	return data, nil
}

// Builder reads every bundle file into a Builder.
func (c *Config) Builder() (*Builder, error) {
	builder := new(Builder)
	for _, b := range c.Bundles {
		data, err := c.read(b)
		if err != nil {
			return nil, err
		}
		builder.Bundle(b.Address, data)
	}
	return builder, nil
}

// Check decodes every bundle without publishing and returns the number of
// modules per bundle.
func (c *Config) Check() ([]int, error) {
	counts := make([]int, 0, len(c.Bundles))
	for i, b := range c.Bundles {
		data, err := c.read(b)
		if err != nil {
			return nil, err
		}
		modules, err := bytecode.DecodeBundle(data)
		if err != nil {
			return nil, errors.Wrapf(err, "bundle %d (%s)", i, b.Path)
		}
		counts = append(counts, len(modules))
	}
	return counts, nil
}
