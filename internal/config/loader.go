package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBurrb loads the Life of a Burrb configuration.
// Search order: customPath -> ~/.burrb/configs/burrb.yaml -> ./configs/burrb.yaml -> embedded default
func LoadBurrb(customPath string) (BurrbConfig, error) {
	var cfg BurrbConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("burrb.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/burrb.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBurrbYAML, &cfg); err != nil {
		return DefaultBurrbConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".burrb", "configs", filename)
}

// ApplyBurrbPreset modifies the config based on a difficulty preset.
func ApplyBurrbPreset(cfg *BurrbConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.MaxHealth = 7
		cfg.NPC.AggressiveFraction = 0.2
		cfg.NPC.SightRange = 140
	case DifficultyHard:
		cfg.NPC.AggressiveFraction = 0.7
		cfg.NPC.AttackDamage = 2
		cfg.NPC.SightRange = 260
	}
}
