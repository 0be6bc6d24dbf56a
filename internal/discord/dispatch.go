package discord

import (
	"context"
	"errors"

	"github.com/keshon/commandclient/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Outcome is the decision taken for one message.
type Outcome int

const (
	Ignored Outcome = iota
	Invoked
	Usage
	NotAllowed
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Invoked:
		return "invoked"
	case Usage:
		return "usage"
	case NotAllowed:
		return "not_allowed"
	default:
		return "unknown"
	}
}

var ErrNoSession = errors.New("discord: no session attached")

// Dispatch runs the guard pipeline for m and invokes the matching callback.
//
// Guards run in this order: prefix, command lookup, DM eligibility, minimum
// and maximum argument count, permission. Messages without the prefix, with an
// unknown command, or sent in a DM to a command that does not allow DMs are
// ignored silently. The callback's error is returned as is.
func (b *Bot) Dispatch(ctx context.Context, m *discordgo.Message) (Outcome, error) {
	if m == nil || m.Author == nil {
		return Ignored, nil
	}

	prefix := b.Prefix()
	name, args, ok := cmd.Parse(m.Content, prefix)
	if !ok {
		return Ignored, nil
	}

	entry, ok := b.commands.Lookup(name)
	if !ok {
		return Ignored, nil
	}

	session, _, _ := b.state()
	if session == nil {
		return Ignored, ErrNoSession
	}

	log := b.log.With().Str("command", name).Str("channel_id", m.ChannelID).Logger()
	opts := entry.Options
	kind := b.classify(session, m)

	if kind == kindDM && !opts.DMAllowed {
		log.Debug().Msg("Command not allowed in direct messages")
		return Ignored, nil
	}

	if len(args) < opts.MinArgs {
		log.Debug().Int("args", len(args)).Int("min", opts.MinArgs).Msg("Too few arguments")
		return Usage, b.sendUsage(session, m, kind, prefix, entry)
	}
	if opts.MaxArgs >= 0 && len(args) > opts.MaxArgs {
		log.Debug().Int("args", len(args)).Int("max", opts.MaxArgs).Msg("Too many arguments")
		return Usage, b.sendUsage(session, m, kind, prefix, entry)
	}

	if kind == kindGuild && opts.RequiredPermission != 0 {
		denied, err := b.permissionDenied(session, m, opts.RequiredPermission)
		if err != nil {
			return Ignored, err
		}
		if denied {
			log.Debug().Str("user_id", m.Author.ID).Msg("Permission guard refused command")
			return NotAllowed, b.replyIfPermitted(session, m, kind, b.NotAllowedMessage())
		}
	}

	if entry.Callback == nil {
		return Ignored, nil
	}

	inv := &cmd.Invocation{
		Name:    name,
		Args:    args,
		Message: m,
		Sender:  session,
	}
	return Invoked, entry.Callback(ctx, inv)
}

// sendUsage replies with the command's usage line, if it has one.
func (b *Bot) sendUsage(s Session, m *discordgo.Message, kind channelKind, prefix string, entry cmd.Entry) error {
	usage := cmd.FormatUsage(entry.Options.UsageMessage, prefix, entry.Name)
	if usage == "" {
		return nil
	}
	return b.replyIfPermitted(s, m, kind, "Usage: `"+usage+"`")
}
