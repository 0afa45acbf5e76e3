// Package config reads the optional YAML configuration file accepted
// by both executables via --config, grounded on the teacher's
// example/config.ReadConfigFile (ioutil.ReadFile + yaml.Unmarshal).
// Command-line flags always override values loaded from file.
package config

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// File is the on-disk shape of --config. Every field is optional; a
// zero value means "use the flag default".
type File struct {
	Rounds      int    `yaml:"rounds"`
	Socket      string `yaml:"socket"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// ReadFile loads and parses a YAML config file.
func ReadFile(path string) (*File, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, err
	}
	return f, nil
}
