package config

import (
	_ "embed"
)

//go:embed defaults/burrb.yaml
var defaultBurrbYAML []byte

// DefaultBurrbConfig returns the default Life of a Burrb configuration.
func DefaultBurrbConfig() BurrbConfig {
	return BurrbConfig{
		Gameplay: BurrbGameplay{
			MaxHealth:     5,
			WalkSpeed:     180, // 3 px per tick at 60 fps
			StartingChips: 2,
		},
		NPC: BurrbNPC{
			Count:              80,
			AggressiveFraction: 0.4,
			AttackDamage:       1,
			AttackRange:        18,
			SightRange:         200,
			MaxHP:              3,
			DefeatReward:       1,
		},
		World: BurrbWorld{
			CarsPerRoadMin: 2,
			CarsPerRoadMax: 4,
		},
	}
}
