package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the built-in platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		World: WorldConfig{
			Width:  160,
			Height: 120,
		},
		Physics: PhysicsConfig{
			Gravity:      300,
			JumpVelocity: -150,
			RunSpeed:     100,
			ScrollSpeed:  50,
			GroundLevel:  120,
			MaxVelocity:  500,
		},
		Player: PlayerConfig{
			X:      30,
			Width:  16,
			Height: 8,
		},
		Platforms: PlatformsConfig{
			MinCount: 3,
			Spacing:  160,
			RespawnX: 160,
			DespawnX: -20,
			MinY:     60,
			MaxY:     100,
			Width:    16,
			Height:   4,
		},
		Collectibles: CollectibleConfig{
			Chance: 0.7,
			Offset: 20,
			Width:  8,
			Height: 5,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
