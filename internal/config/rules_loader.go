package config

import (
	"fmt"
	"os"

	"tasnif/pkg/classifier"

	"gopkg.in/yaml.v3"
)

// LoadRules reads the editorial tables from a YAML file, layered over the
// built-in defaults: fields absent from the file keep their default values.
// An empty path returns the defaults unchanged.
func LoadRules(path string) (*classifier.Tables, error) {
	tables := classifier.DefaultTables()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, tables); err != nil {
		return nil, fmt.Errorf("failed to parse rules file '%s': %w", path, err)
	}
	return tables, nil
}
