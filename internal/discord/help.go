package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/commandclient/pkg/cmd"
)

// help lists the commands usable in the invoking channel. In DMs only
// commands allowing DMs are shown.
func (b *Bot) help(_ context.Context, inv *cmd.Invocation) error {
	if !b.HelpEnabled() {
		return nil
	}

	session, _, _ := b.state()
	if session == nil {
		return ErrNoSession
	}

	kind := b.classify(session, inv.Message)
	ok, err := b.canSend(session, inv.Message, kind)
	if err != nil {
		return fmt.Errorf("check send permission: %w", err)
	}
	if !ok {
		return nil
	}

	text := buildHelp(b.commands.Entries(), b.Prefix(), kind)
	if text == "" {
		return nil
	}
	if _, err := session.ChannelMessageSend(inv.Message.ChannelID, text); err != nil {
		return fmt.Errorf("send help to %s: %w", inv.Message.ChannelID, err)
	}
	return nil
}

func buildHelp(entries []cmd.Entry, prefix string, kind channelKind) string {
	var sb strings.Builder
	for _, e := range entries {
		if !e.Options.DisplayInHelp {
			continue
		}
		if kind == kindDM && !e.Options.DMAllowed {
			continue
		}
		fmt.Fprintf(&sb, "`%s%s`: %s\n", prefix, e.Name, e.Options.HelpMessage)
	}
	return sb.String()
}
