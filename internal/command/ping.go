package command

import (
	"context"

	"github.com/keshon/commandclient/pkg/cmd"
)

func Ping(_ context.Context, inv *cmd.Invocation) error {
	return inv.Reply("Pong")
}
