package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the file-level configuration for content loading and the dev
// server. It decodes from YAML or JSON depending on the file extension.
type Config struct {
	// Paths are files or directories holding prototype documents.
	Paths []string `json:"paths" yaml:"paths"`
	// Policy is "reject" (default) or "overwrite".
	Policy string `json:"policy" yaml:"policy"`
	// Strict turns every diagnostic into a load failure. Shipping builds
	// want this on; iterative authoring wants it off.
	Strict bool `json:"strict" yaml:"strict"`
	// Listen is the dev server bind address.
	Listen string `json:"listen" yaml:"listen"`
	// SchemaPath is where the composite schema artifact is written.
	SchemaPath string `json:"schemaPath" yaml:"schemaPath"`
}

func DefaultConfig() Config {
	return Config{
		Paths:      DefaultPaths(),
		Policy:     "reject",
		Listen:     "127.0.0.1:8190",
		SchemaPath: filepath.Join(".vscode", "prototypes.schema.json"),
	}
}

// DefaultPaths returns the canonical content locations relative to the module
// root, deduplicated.
func DefaultPaths() []string {
	candidates := []string{
		filepath.Join("config", "prototypes"),
		filepath.Join("..", "config", "prototypes"),
	}

	paths := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		cleaned := filepath.Clean(candidate)
		if _, duplicate := seen[cleaned]; duplicate {
			continue
		}
		seen[cleaned] = struct{}{}
		paths = append(paths, cleaned)
	}
	return paths
}

// CollisionPolicy parses the configured policy name.
func (c Config) CollisionPolicy() (CollisionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(c.Policy)) {
	case "", "reject":
		return RejectDuplicate, nil
	case "overwrite":
		return Overwrite, nil
	default:
		return RejectDuplicate, fmt.Errorf("catalog: unknown collision policy %q", c.Policy)
	}
}

// LoadConfig reads a config file, filling unset fields from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("catalog: read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("catalog: unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return Config{}, fmt.Errorf("catalog: parse config %s: %w", path, err)
	}
	if len(cfg.Paths) == 0 {
		cfg.Paths = DefaultPaths()
	}
	return cfg, nil
}
