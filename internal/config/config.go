// Package config provides YAML-based gameplay configuration loading and
// difficulty presets for Life of a Burrb.
package config

// BurrbConfig contains all gameplay tunables for a session.
type BurrbConfig struct {
	Gameplay BurrbGameplay `yaml:"gameplay"`
	NPC      BurrbNPC      `yaml:"npc"`
	World    BurrbWorld    `yaml:"world"`
}

// BurrbGameplay defines the player's baseline stats.
type BurrbGameplay struct {
	MaxHealth     int     `yaml:"max_health"`     // hearts
	WalkSpeed     float64 `yaml:"walk_speed"`     // pixels per second
	StartingChips int     `yaml:"starting_chips"` // wallet chips at spawn
}

// BurrbNPC defines town population and combat parameters.
type BurrbNPC struct {
	Count              int     `yaml:"count"`
	AggressiveFraction float64 `yaml:"aggressive_fraction"` // 0.0 = all passive, 1.0 = all aggressive
	AttackDamage       int     `yaml:"attack_damage"`       // hearts per bite
	AttackRange        float64 `yaml:"attack_range"`        // pixels
	SightRange         float64 `yaml:"sight_range"`         // pixels; aggressive npcs chase inside this
	MaxHP              int     `yaml:"max_hp"`
	DefeatReward       int     `yaml:"defeat_reward"` // chips paid per defeated npc
}

// BurrbWorld defines world generation parameters.
type BurrbWorld struct {
	CarsPerRoadMin int `yaml:"cars_per_road_min"`
	CarsPerRoadMax int `yaml:"cars_per_road_max"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)
