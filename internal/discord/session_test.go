package discord

import (
	"errors"
	"sync"

	"github.com/keshon/commandclient/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

const (
	botID     = "bot"
	guildChan = "guild-chan"
	dmChan    = "dm-chan"
	groupChan = "group-chan"
	authorID  = "author"
	testGuild = "guild"
	messageID = "msg-1"
)

type sentMessage struct {
	ChannelID string
	Content   string
	Reply     bool
}

// fakeSession is an in-memory Session.
type fakeSession struct {
	mu       sync.Mutex
	channels map[string]*discordgo.Channel
	perms    map[string]int64
	sent     []sentMessage
	sendErr  error
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		channels: map[string]*discordgo.Channel{
			guildChan: {ID: guildChan, GuildID: testGuild, Type: discordgo.ChannelTypeGuildText},
			dmChan:    {ID: dmChan, Type: discordgo.ChannelTypeDM},
			groupChan: {ID: groupChan, Type: discordgo.ChannelTypeGroupDM},
		},
		perms: map[string]int64{
			botID + "/" + guildChan: discordgo.PermissionSendMessages | discordgo.PermissionViewChannel,
		},
	}
}

func (f *fakeSession) setPerms(userID, channelID string, perms int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.perms[userID+"/"+channelID] = perms
}

func (f *fakeSession) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func (f *fakeSession) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, errors.New("unknown channel")
	}
	return ch, nil
}

func (f *fakeSession) UserChannelPermissions(userID, channelID string, _ ...discordgo.RequestOption) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.channels[channelID]; !ok {
		return 0, errors.New("unknown channel")
	}
	if userID == "" {
		return 0, errors.New("unknown member")
	}
	return f.perms[userID+"/"+channelID], nil
}

func (f *fakeSession) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, sentMessage{ChannelID: channelID, Content: content})
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *fakeSession) ChannelMessageSendReply(channelID string, content string, ref *discordgo.MessageReference, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if ref == nil || ref.MessageID == "" {
		return nil, errors.New("reply without reference")
	}
	f.sent = append(f.sent, sentMessage{ChannelID: channelID, Content: content, Reply: true})
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

// countingCommands records lookups on top of a real registry.
type countingCommands struct {
	*cmd.Registry
	mu      sync.Mutex
	lookups int
}

func (c *countingCommands) Lookup(name string) (cmd.Entry, bool) {
	c.mu.Lock()
	c.lookups++
	c.mu.Unlock()
	return c.Registry.Lookup(name)
}

func message(channelID, content string) *discordgo.Message {
	guildID := ""
	if channelID == guildChan {
		guildID = testGuild
	}
	return &discordgo.Message{
		ID:        messageID,
		ChannelID: channelID,
		GuildID:   guildID,
		Content:   content,
		Author:    &discordgo.User{ID: authorID, Username: "someone"},
	}
}
