package chquery

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDefaultSettings reads a YAML file of query settings, typically an
// organization-wide baseline applied to every builder:
//
//	defaults, err := chquery.LoadDefaultSettings("chquery.yaml")
//	...
//	chquery.Select("id").From("events").Settings(defaults)
//
// Per-query Settings calls merge shallowly, later keys winning, so a
// query can override individual defaults.
func LoadDefaultSettings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	return ParseDefaultSettings(data)
}

// ParseDefaultSettings parses a YAML document mapping setting names to
// values.
func ParseDefaultSettings(data []byte) (map[string]any, error) {
	settings := map[string]any{}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return settings, nil
}
