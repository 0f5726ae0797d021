package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Project: ProjectConfig{
			Name:    "My Library",
			Version: "0.1.0",
		},
		AST: ASTConfig{
			Dump: "ast.json",
		},
		Sources: []*SourceConfig{
			{
				Name:    "api",
				Dir:     "include",
				Include: []string{"*.hpp", "*.h"},
			},
		},
		Tutorials: &TutorialsConfig{
			Dir: "docs",
		},
		Output: OutputConfig{
			Dir: "site",
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
