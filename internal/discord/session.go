package discord

import (
	"github.com/keshon/commandclient/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Session is the subset of *discordgo.Session the bot uses.
type Session interface {
	cmd.Sender
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
}

// stateSession serves channel lookups from the gateway state before falling
// back to the REST API.
type stateSession struct {
	*discordgo.Session
}

func (s stateSession) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if s.State != nil {
		if ch, err := s.State.Channel(channelID); err == nil {
			return ch, nil
		}
	}
	return s.Session.Channel(channelID, options...)
}
