// Package config provides YAML-based game configuration loading for the
// platformer.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// PlatformerConfig contains all tunables of a platformer run.
// Distances are world pixels, times are seconds.
type PlatformerConfig struct {
	World        WorldConfig       `yaml:"world"`
	Physics      PhysicsConfig     `yaml:"physics"`
	Player       PlayerConfig      `yaml:"player"`
	Platforms    PlatformsConfig   `yaml:"platforms"`
	Collectibles CollectibleConfig `yaml:"collectibles"`
}

// WorldConfig defines the visible world size.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines motion parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // downward acceleration
	JumpVelocity float64 `yaml:"jump_velocity"` // negative = up
	RunSpeed     float64 `yaml:"run_speed"`     // player auto-run speed
	ScrollSpeed  float64 `yaml:"scroll_speed"`  // leftward drift of platforms and coins
	GroundLevel  float64 `yaml:"ground_level"`  // y of the implicit ground
	MaxVelocity  float64 `yaml:"max_velocity"`  // per-axis speed cap
}

// PlayerConfig defines the player sprite.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlatformsConfig defines platform spawning and recycling.
type PlatformsConfig struct {
	MinCount int     `yaml:"min_count"` // replenish while below this
	Spacing  float64 `yaml:"spacing"`   // initial horizontal spacing
	RespawnX float64 `yaml:"respawn_x"` // x of replenished platforms
	DespawnX float64 `yaml:"despawn_x"` // removed once x < despawn_x
	MinY     int     `yaml:"min_y"`     // inclusive
	MaxY     int     `yaml:"max_y"`     // exclusive
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
}

// CollectibleConfig defines coins spawned above platforms.
type CollectibleConfig struct {
	Chance float64 `yaml:"chance"` // probability per platform spawn
	Offset float64 `yaml:"offset"` // distance above the platform
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Validate checks that the config describes a playable world.
func (c PlatformerConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive, got %vx%v", ErrInvalid, c.World.Width, c.World.Height)
	case c.Physics.JumpVelocity >= 0:
		return fmt.Errorf("%w: jump_velocity must be negative (up), got %v", ErrInvalid, c.Physics.JumpVelocity)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive, got %v", ErrInvalid, c.Physics.Gravity)
	case c.Physics.MaxVelocity < -c.Physics.JumpVelocity:
		return fmt.Errorf("%w: max_velocity (%v) must be at least the jump speed (%v)", ErrInvalid, c.Physics.MaxVelocity, -c.Physics.JumpVelocity)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalid)
	case c.Platforms.MinCount < 1:
		return fmt.Errorf("%w: platforms.min_count must be at least 1, got %d", ErrInvalid, c.Platforms.MinCount)
	case c.Platforms.MaxY <= c.Platforms.MinY:
		return fmt.Errorf("%w: platforms.max_y (%d) must exceed min_y (%d)", ErrInvalid, c.Platforms.MaxY, c.Platforms.MinY)
	case c.Platforms.Width <= 0 || c.Platforms.Height <= 0:
		return fmt.Errorf("%w: platform size must be positive", ErrInvalid)
	case c.Collectibles.Chance < 0 || c.Collectibles.Chance > 1:
		return fmt.Errorf("%w: collectibles.chance must be within [0, 1], got %v", ErrInvalid, c.Collectibles.Chance)
	}
	return nil
}
