package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/asteroids-classic/internal/object"
)

// ErrInvalidConfig is returned when a loaded value cannot run a game.
var ErrInvalidConfig = errors.New("invalid config")

// Rules are the gameplay constants of a session. Every field can be
// overridden through the config file or environment.
type Rules struct {
	ArenaWidth  float64 `mapstructure:"arena_width"`
	ArenaHeight float64 `mapstructure:"arena_height"`
	TickRate    int     `mapstructure:"tick_rate"` // Simulation ticks per second

	RotateStep      float64 `mapstructure:"rotate_step"` // Degrees per tick
	ThrustStep      float64 `mapstructure:"thrust_step"`
	InvincibleTicks int     `mapstructure:"invincible_ticks"`

	ShotSpeed float64 `mapstructure:"shot_speed"`
	ShotTTL   int     `mapstructure:"shot_ttl"`
	MaxShots  int     `mapstructure:"max_shots"`

	ScorePerAsteroid int     `mapstructure:"score_per_asteroid"`
	SplitAngle       float64 `mapstructure:"split_angle"`
	InitialLives     int     `mapstructure:"initial_lives"`
	StartLevel       int     `mapstructure:"start_level"`
	LevelCycle       int     `mapstructure:"level_cycle"` // Opening wave size repeats 1..LevelCycle

	// Seed for asteroid placement. Zero picks a seed from the clock.
	Seed int64 `mapstructure:"seed"`

	HitBurst   object.Burst `mapstructure:"hit_burst"`   // Asteroid destroyed, others remain
	ClearBurst object.Burst `mapstructure:"clear_burst"` // Last asteroid destroyed
	DeathBurst object.Burst `mapstructure:"death_burst"` // Player destroyed
}

// DefaultRules returns the classic arcade rule set at 30 ticks per second.
func DefaultRules() Rules {
	const tickRate = 30
	return Rules{
		ArenaWidth:  1024,
		ArenaHeight: 768,
		TickRate:    tickRate,

		RotateStep:      8,
		ThrustStep:      0.5,
		InvincibleTicks: 3 * tickRate,

		ShotSpeed: 15,
		ShotTTL:   tickRate,
		MaxShots:  3,

		ScorePerAsteroid: 100,
		SplitAngle:       object.DefaultSplitAngle,
		InitialLives:     3,
		StartLevel:       1,
		LevelCycle:       3,

		HitBurst:   object.Burst{Particles: 12, Speed: 4, Frames: 15},
		ClearBurst: object.Burst{Particles: 24, Speed: 5, Frames: 45},
		DeathBurst: object.Burst{Particles: 32, Speed: 6, Frames: 60},
	}
}

// Arena returns the playfield size.
func (r Rules) Arena() object.Arena {
	return object.Arena{Width: r.ArenaWidth, Height: r.ArenaHeight}
}

// TickDuration returns the wall-clock length of one tick.
func (r Rules) TickDuration() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(r.TickRate)
}

// Validate rejects rule sets the simulation cannot run with.
func (r Rules) Validate() error {
	checks := []struct {
		ok   bool
		name string
		val  any
	}{
		{r.ArenaWidth > 0, "arena_width", r.ArenaWidth},
		{r.ArenaHeight > 0, "arena_height", r.ArenaHeight},
		{r.TickRate > 0, "tick_rate", r.TickRate},
		{r.ThrustStep >= 0, "thrust_step", r.ThrustStep},
		{r.InvincibleTicks >= 0, "invincible_ticks", r.InvincibleTicks},
		{r.ShotSpeed >= 0, "shot_speed", r.ShotSpeed},
		{r.ShotTTL > 0, "shot_ttl", r.ShotTTL},
		{r.MaxShots > 0, "max_shots", r.MaxShots},
		{r.ScorePerAsteroid >= 0, "score_per_asteroid", r.ScorePerAsteroid},
		{r.InitialLives > 0, "initial_lives", r.InitialLives},
		{r.StartLevel > 0, "start_level", r.StartLevel},
		{r.LevelCycle > 0, "level_cycle", r.LevelCycle},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("rules.%s = %v: %w", c.name, c.val, ErrInvalidConfig)
		}
	}

	for name, b := range map[string]object.Burst{
		"hit_burst":   r.HitBurst,
		"clear_burst": r.ClearBurst,
		"death_burst": r.DeathBurst,
	} {
		if b.Particles <= 0 || b.Frames <= 0 || b.Speed < 0 {
			return fmt.Errorf("rules.%s = %+v: %w", name, b, ErrInvalidConfig)
		}
	}
	return nil
}
