package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pitchcraft/generator"
)

// LoadStyle reads a deck style from a YAML file. An empty path yields an
// empty style.
func LoadStyle(path string) (generator.Style, error) {
	if path == "" {
		return generator.Style{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style %s: %w", path, err)
	}
	style := generator.Style{}
	if err := yaml.Unmarshal(data, &style); err != nil {
		return nil, fmt.Errorf("parse style %s: %w", path, err)
	}
	return style, nil
}
