package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. ASTEROIDS_SSH_PORT.
const EnvPrefix = "ASTEROIDS"

// Config is everything a host needs to run game sessions.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	SSH    SSHConfig    `mapstructure:"ssh"`
	Client ClientConfig `mapstructure:"client"`
	Rules  Rules        `mapstructure:"rules"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SSHConfig controls the multi-session SSH host.
type SSHConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	HostKeyPath     string        `mapstructure:"host_key"`
	MaxSessions     int           `mapstructure:"max_sessions"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ClientConfig controls the per-session terminal loop around the simulation.
type ClientConfig struct {
	InactivityWarn       time.Duration `mapstructure:"inactivity_warn"`
	InactivityDisconnect time.Duration `mapstructure:"inactivity_disconnect"`
	ShutdownDisplay      time.Duration `mapstructure:"shutdown_display"`
	MaxUsernameLength    int           `mapstructure:"max_username_length"`
}

// Load sets default values, reads the optional config file at path and
// applies ASTEROIDS_* environment overrides. The file type is taken from
// the extension (yaml, json, toml). An empty path skips the file.
func Load(path string) (Config, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Rules.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.SSH.MaxSessions < 0 {
		return Config{}, fmt.Errorf("ssh.max_sessions %d: %w", cfg.SSH.MaxSessions, ErrInvalidConfig)
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("log.level", "info")

	viper.SetDefault("ssh.host", "::")
	viper.SetDefault("ssh.port", "2222")
	viper.SetDefault("ssh.host_key", "/app/keys/host_key")
	viper.SetDefault("ssh.max_sessions", 0)
	viper.SetDefault("ssh.shutdown_timeout", "15s")

	viper.SetDefault("client.inactivity_warn", "90s")
	viper.SetDefault("client.inactivity_disconnect", "120s")
	viper.SetDefault("client.shutdown_display", "10s")
	viper.SetDefault("client.max_username_length", 16)

	r := DefaultRules()
	viper.SetDefault("rules.arena_width", r.ArenaWidth)
	viper.SetDefault("rules.arena_height", r.ArenaHeight)
	viper.SetDefault("rules.tick_rate", r.TickRate)
	viper.SetDefault("rules.rotate_step", r.RotateStep)
	viper.SetDefault("rules.thrust_step", r.ThrustStep)
	viper.SetDefault("rules.invincible_ticks", r.InvincibleTicks)
	viper.SetDefault("rules.shot_speed", r.ShotSpeed)
	viper.SetDefault("rules.shot_ttl", r.ShotTTL)
	viper.SetDefault("rules.max_shots", r.MaxShots)
	viper.SetDefault("rules.score_per_asteroid", r.ScorePerAsteroid)
	viper.SetDefault("rules.split_angle", r.SplitAngle)
	viper.SetDefault("rules.initial_lives", r.InitialLives)
	viper.SetDefault("rules.start_level", r.StartLevel)
	viper.SetDefault("rules.level_cycle", r.LevelCycle)
	viper.SetDefault("rules.seed", r.Seed)

	for key, b := range map[string]struct {
		particles int
		speed     float64
		frames    int
	}{
		"rules.hit_burst":   {r.HitBurst.Particles, r.HitBurst.Speed, r.HitBurst.Frames},
		"rules.clear_burst": {r.ClearBurst.Particles, r.ClearBurst.Speed, r.ClearBurst.Frames},
		"rules.death_burst": {r.DeathBurst.Particles, r.DeathBurst.Speed, r.DeathBurst.Frames},
	} {
		viper.SetDefault(key+".particles", b.particles)
		viper.SetDefault(key+".speed", b.speed)
		viper.SetDefault(key+".frames", b.frames)
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}
