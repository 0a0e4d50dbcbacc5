package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const survivorsFile = "survivors.yaml"

// LoadSurvivors loads the survivors configuration.
// Search order: customPath -> ~/.survivors/configs/survivors.yaml -> ./configs/survivors.yaml -> embedded default.
// Files are decoded over the defaults, so partial files only override what they name.
func LoadSurvivors(customPath string) (SurvivorsConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultSurvivorsConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return DefaultSurvivorsConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(survivorsFile), filepath.Join("configs", survivorsFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	cfg, err := decode(defaultSurvivorsYAML)
	if err != nil {
		return DefaultSurvivorsConfig(), nil
	}
	return cfg, nil
}

func decode(data []byte) (SurvivorsConfig, error) {
	cfg := DefaultSurvivorsConfig()
	// yaml.v3 keeps slice defaults when a key is absent but replaces them when present.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".survivors", "configs", filename)
}
