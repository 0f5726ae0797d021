package config

import (
	"errors"
	"fmt"
	"strings"
)

// validate checks the loaded configuration for the mistakes that would
// otherwise only surface halfway through a build.
func validate(cfg *Config) error {
	if cfg.Project.Name == "" {
		return errors.New("project.name is required")
	}
	if len(cfg.Sources) == 0 {
		return errors.New("at least one source root must be configured")
	}

	seen := make(map[string]struct{}, len(cfg.Sources))
	for i, src := range cfg.Sources {
		if src.Dir == "" {
			return fmt.Errorf("sources[%d]: dir is required", i)
		}
		if strings.HasPrefix(src.Dir, "/") {
			return fmt.Errorf("sources[%d]: dir must be relative to the project root", i)
		}
		if _, dup := seen[src.Name]; dup {
			return fmt.Errorf("sources[%d]: duplicate source name %q", i, src.Name)
		}
		seen[src.Name] = struct{}{}
	}

	if cfg.Tutorials != nil && cfg.Tutorials.Dir == "" {
		return errors.New("tutorials.dir is required when tutorials are configured")
	}

	if base := cfg.Output.BaseURL; base != "" && strings.Contains(base, "://") {
		return errors.New("output.base_url must be a site-absolute path, not a full URL")
	}
	return nil
}
