package command

import (
	"context"
	"testing"

	"github.com/keshon/commandclient/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	channelID string
	content   string
	reply     bool
}

type fakeSender struct {
	sent []sent
}

func (f *fakeSender) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, sent{channelID, content, false})
	return &discordgo.Message{}, nil
}

func (f *fakeSender) ChannelMessageSendReply(channelID string, content string, _ *discordgo.MessageReference, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, sent{channelID, content, true})
	return &discordgo.Message{}, nil
}

func invoke(t *testing.T, cb cmd.Callback, name string, args ...string) *fakeSender {
	t.Helper()
	s := &fakeSender{}
	err := cb(context.Background(), &cmd.Invocation{
		Name:    name,
		Args:    args,
		Message: &discordgo.Message{ID: "m1", ChannelID: "c1"},
		Sender:  s,
	})
	require.NoError(t, err)
	return s
}

func TestPing(t *testing.T) {
	s := invoke(t, Ping, "ping")
	assert.Equal(t, []sent{{"c1", "Pong", true}}, s.sent)
}

func TestEcho(t *testing.T) {
	s := invoke(t, Echo, "echo", "hello", "", "world")
	assert.Equal(t, []sent{{"c1", "hello  world", false}}, s.sent)
}

func TestRegisterBuiltins(t *testing.T) {
	reg := cmd.NewRegistry()
	RegisterBuiltins(reg)

	ping, ok := reg.Lookup("ping")
	require.True(t, ok)
	assert.Equal(t, 0, ping.Options.MaxArgs)
	assert.False(t, ping.Options.DMAllowed)

	echo, ok := reg.Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, 1, echo.Options.MinArgs)
	assert.Equal(t, "%f <Message>", echo.Options.UsageMessage)
	assert.True(t, echo.Options.DMAllowed)

	_, ok = reg.Lookup("roll")
	assert.True(t, ok)

	names := make([]string, 0, 3)
	for _, e := range reg.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"ping", "echo", "roll"}, names)
}

func TestRegisterBuiltins_AppliesMiddleware(t *testing.T) {
	reg := cmd.NewRegistry()
	var seen []string
	RegisterBuiltins(reg, func(next cmd.Callback) cmd.Callback {
		return func(ctx context.Context, inv *cmd.Invocation) error {
			seen = append(seen, inv.Name)
			return next(ctx, inv)
		}
	})

	ping, _ := reg.Lookup("ping")
	invoke(t, ping.Callback, "ping")
	assert.Equal(t, []string{"ping"}, seen)
}
