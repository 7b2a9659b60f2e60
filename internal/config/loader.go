package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBubbles loads the configuration.
// Search order: customPath -> ~/.bubbles/configs/bubbles.yaml -> ./configs/bubbles.yaml -> embedded default
// Files are read over the defaults, so a file only needs the keys it changes.
func LoadBubbles(customPath string) (BubblesConfig, error) {
	cfg, err := embeddedDefaults()
	if err != nil {
		return cfg, err
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath("bubbles.yaml"), filepath.Join("configs", "bubbles.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		local := cfg
		if err := yaml.Unmarshal(data, &local); err != nil {
			continue
		}
		return local, local.Validate()
	}

	return cfg, nil
}

func embeddedDefaults() (BubblesConfig, error) {
	var cfg BubblesConfig
	if err := yaml.Unmarshal(defaultBubblesYAML, &cfg); err != nil {
		return DefaultBubblesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bubbles", "configs", filename)
}
