package middleware

import (
	"context"
	"time"

	"github.com/keshon/commandclient/pkg/cmd"

	"github.com/rs/zerolog"
)

// WithCommandLogger logs every command execution with its caller, duration
// and error. The error is passed through unchanged.
func WithCommandLogger(log zerolog.Logger) cmd.Middleware {
	return func(next cmd.Callback) cmd.Callback {
		return func(ctx context.Context, inv *cmd.Invocation) error {
			start := time.Now()
			err := next(ctx, inv)

			ev := log.Info()
			if err != nil {
				ev = log.Warn().Err(err)
			}
			if m := inv.Message; m != nil {
				ev = ev.Str("channel_id", m.ChannelID).Str("guild_id", m.GuildID)
				if m.Author != nil {
					ev = ev.Str("user_id", m.Author.ID).Str("username", m.Author.Username)
				}
			}
			ev.Str("command", inv.Name).
				Int("args", len(inv.Args)).
				Dur("took", time.Since(start)).
				Msg("Command executed")
			return err
		}
	}
}
