package config

// applyDefaults fills in the optional parts of the configuration.
func applyDefaults(cfg *Config) {
	if cfg.Project.Version == "" {
		cfg.Project.Version = "0.0.0"
	}
	if cfg.AST.Dump == "" {
		cfg.AST.Dump = "ast.json"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "site"
	}
	for _, src := range cfg.Sources {
		if src.Name == "" {
			src.Name = src.Dir
		}
		if len(src.Include) == 0 {
			src.Include = []string{"*.hpp", "*.h"}
		}
	}
	if cfg.Verify.MaxConcurrent <= 0 {
		cfg.Verify.MaxConcurrent = 8
	}
}
