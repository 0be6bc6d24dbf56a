// cmd/discord/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/keshon/commandclient/internal/command"
	"github.com/keshon/commandclient/internal/config"
	"github.com/keshon/commandclient/internal/discord"
	"github.com/keshon/commandclient/internal/logger"
	"github.com/keshon/commandclient/internal/middleware"
	"github.com/keshon/commandclient/internal/version"
	"github.com/keshon/commandclient/pkg/cmd"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	envFile  string
	prefix   string
	logLevel string
	noHelp   bool
}

func newRootCommand() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:           "discord",
		Short:         "Discord bot answering prefixed text commands",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, _ []string) error {
			var files []string
			if f.envFile != "" {
				files = append(files, f.envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				l := logger.New(os.Stderr, "info")
				l.Error().Err(err).Msg("Failed to load config")
				return err
			}
			applyFlags(c, &f, cfg)
			return run(c.Context(), cfg)
		},
	}

	root.Flags().StringVar(&f.envFile, "env", "", "path to a .env file (default .env)")
	root.Flags().StringVarP(&f.prefix, "prefix", "p", "", "command prefix, overrides COMMAND_PREFIX")
	root.Flags().StringVar(&f.logLevel, "log-level", "", "log level, overrides LOG_LEVEL")
	root.Flags().BoolVar(&f.noHelp, "no-help", false, "disable the help command")
	return root
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(c *cobra.Command, f *flags, cfg *config.Config) {
	if c.Flags().Changed("prefix") {
		cfg.Prefix = f.prefix
	}
	if c.Flags().Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if f.noHelp {
		cfg.EnableHelp = false
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.New(os.Stderr, cfg.LogLevel)
	log.Info().Msgf("Starting %s...", version.String())
	if cfg.DotEnvMissing {
		log.Info().Msg("No .env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot := discord.NewBot(
		discord.WithLogger(logger.Component(log, "discord")),
		discord.WithPrefix(cfg.Prefix),
		discord.WithHelp(cfg.EnableHelp),
		discord.WithNotAllowedMessage(cfg.NotAllowedMessage),
		discord.WithInvertedPermissionCheck(cfg.InvertPermissionCheck),
	)
	command.RegisterBuiltins(bot.Commands(), commandMiddlewares(cfg, log)...)

	if err := bot.Run(ctx, cfg.DiscordToken); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Discord bot error")
		return err
	}

	log.Info().Msg("Discord bot exited cleanly")
	return nil
}

func commandMiddlewares(cfg *config.Config, log zerolog.Logger) []cmd.Middleware {
	cmdLog := logger.Component(log, "command")
	mws := []cmd.Middleware{middleware.WithCommandLogger(cmdLog)}
	if cfg.CommandRate > 0 {
		limiter := middleware.NewRateLimiter(rate.Limit(cfg.CommandRate), cfg.CommandBurst).
			OnDrop(func(inv *cmd.Invocation) {
				cmdLog.Debug().Str("command", inv.Name).Msg("Rate limited")
			})
		mws = append(mws, limiter.Middleware())
	}
	return mws
}
