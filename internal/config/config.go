// Package config loads bot settings from the environment, after reading an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrMissingToken = errors.New("DISCORD_TOKEN is not set")

type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN"`

	Prefix            string `env:"COMMAND_PREFIX" envDefault:"!"`
	EnableHelp        bool   `env:"ENABLE_HELP" envDefault:"true"`
	NotAllowedMessage string `env:"COMMAND_NOT_ALLOWED_MESSAGE" envDefault:"You aren't allowed to run this command."`
	// InvertPermissionCheck refuses authors who hold a command's required
	// permission rather than those who lack it.
	InvertPermissionCheck bool `env:"INVERT_PERMISSION_CHECK" envDefault:"false"`

	// CommandRate is the per-user command rate in invocations per second, 0 disables it.
	CommandRate  float64 `env:"COMMAND_RATE" envDefault:"0"`
	CommandBurst int     `env:"COMMAND_BURST" envDefault:"1"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DotEnvMissing is set when no files were given and .env does not exist.
	DotEnvMissing bool
}

// Load reads files (".env" when none are given) into the process environment
// without overriding variables already set, then parses the environment.
// Only a missing default .env is tolerated; it is reported in DotEnvMissing.
func Load(files ...string) (*Config, error) {
	dotEnvMissing := false
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
		dotEnvMissing = true
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.DotEnvMissing = dotEnvMissing
	if cfg.DiscordToken == "" {
		return nil, ErrMissingToken
	}
	if cfg.CommandRate < 0 {
		return nil, fmt.Errorf("COMMAND_RATE must not be negative, got %v", cfg.CommandRate)
	}
	return &cfg, nil
}
