// Package cmd provides the command core: a registry of named callbacks with
// per-command dispatch options, the invocation handed to a callback, and
// callback middleware. Parsing and guards live in the Discord adapter.
package cmd

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Sender is the part of *discordgo.Session a callback needs to answer.
type Sender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Invocation carries everything a callback receives for one matched message.
type Invocation struct {
	Name    string
	Args    []string
	Message *discordgo.Message
	Sender  Sender
}

// Callback runs a command. Errors are returned to the dispatcher's caller
// untouched.
type Callback func(ctx context.Context, inv *Invocation) error

// Reply answers the invoking message with a platform reply.
func (inv *Invocation) Reply(text string) error {
	if _, err := inv.Sender.ChannelMessageSendReply(inv.Message.ChannelID, text, inv.Message.Reference()); err != nil {
		return fmt.Errorf("reply to %s: %w", inv.Message.ID, err)
	}
	return nil
}

// Send posts text to the channel the command was invoked in.
func (inv *Invocation) Send(text string) error {
	if _, err := inv.Sender.ChannelMessageSend(inv.Message.ChannelID, text); err != nil {
		return fmt.Errorf("send to channel %s: %w", inv.Message.ChannelID, err)
	}
	return nil
}
