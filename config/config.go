// Package config implements the execution-tunable settings layer: a
// thin yaml-backed bag of untyped values read through the Get*
// getters in getters.go, the same shape a config package built around
// an Execution sub-map takes. This module has no datasource
// registry and no physical-optimizer settings to carry, so only the
// Execution section survives the adaptation.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds execution-tunable settings. This module never dials a
// datasource, so there is no
// DataSources section; Execution is the only settings bag a buffer
// construction path ever reads from.
type Config struct {
	Execution map[string]interface{} `yaml:"execution"`
}

// ReadConfig loads a Config from a yaml file. yaml.v3 decodes mapping
// nodes into map[string]interface{} directly, so unlike a
// yaml.v2-based ReadConfig this needs no cleanupMaps pass to coerce
// map[interface{}]interface{} keys afterwards.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open config file")
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "couldn't decode yaml configuration")
	}
	return &cfg, nil
}
