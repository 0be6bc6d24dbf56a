package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type channelKind int

const (
	kindGuild channelKind = iota
	// kindDM covers direct and group direct messages.
	kindDM
)

// classify reports whether m was sent in a DM or a guild channel. When the
// channel cannot be fetched the guild ID on the message decides.
func (b *Bot) classify(s Session, m *discordgo.Message) channelKind {
	ch, err := s.Channel(m.ChannelID)
	if err != nil || ch == nil {
		b.log.Debug().Err(err).Str("channel_id", m.ChannelID).Msg("Channel lookup failed, classifying by guild id")
		if m.GuildID == "" {
			return kindDM
		}
		return kindGuild
	}
	if ch.Type == discordgo.ChannelTypeDM || ch.Type == discordgo.ChannelTypeGroupDM {
		return kindDM
	}
	return kindGuild
}

// hasPermission reports whether userID holds every bit of perm in channelID.
func hasPermission(s Session, userID, channelID string, perm int64) (bool, error) {
	perms, err := s.UserChannelPermissions(userID, channelID)
	if err != nil {
		return false, fmt.Errorf("permissions of %s in %s: %w", userID, channelID, err)
	}
	return perms&perm == perm, nil
}

// permissionDenied applies the permission guard to the author of m.
func (b *Bot) permissionDenied(s Session, m *discordgo.Message, perm int64) (bool, error) {
	has, err := hasPermission(s, m.Author.ID, m.ChannelID, perm)
	if err != nil {
		return false, err
	}
	b.mu.RLock()
	inverted := b.invertPermission
	b.mu.RUnlock()
	if inverted {
		return has, nil
	}
	return !has, nil
}

// canSend reports whether the bot may post in the channel of m.
func (b *Bot) canSend(s Session, m *discordgo.Message, kind channelKind) (bool, error) {
	if kind == kindDM {
		return true, nil
	}
	_, selfID, _ := b.state()
	return hasPermission(s, selfID, m.ChannelID, discordgo.PermissionSendMessages)
}

// replyIfPermitted replies to m with text when the bot is allowed to post
// there. Empty text sends nothing.
func (b *Bot) replyIfPermitted(s Session, m *discordgo.Message, kind channelKind, text string) error {
	if text == "" {
		return nil
	}
	ok, err := b.canSend(s, m, kind)
	if err != nil {
		return fmt.Errorf("check send permission: %w", err)
	}
	if !ok {
		b.log.Debug().Str("channel_id", m.ChannelID).Msg("Missing send permission, reply dropped")
		return nil
	}
	if _, err := s.ChannelMessageSendReply(m.ChannelID, text, m.Reference()); err != nil {
		return fmt.Errorf("reply in %s: %w", m.ChannelID, err)
	}
	return nil
}
