package core

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mattn/prettier-langserver/types"
)

// LoadServerConfig reads the YAML server configuration.
func LoadServerConfig(yamlfile string) (*types.ServerConfig, error) {
	f, err := os.Open(yamlfile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var config types.ServerConfig
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
