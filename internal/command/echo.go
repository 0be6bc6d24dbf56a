package command

import (
	"context"
	"strings"

	"github.com/keshon/commandclient/pkg/cmd"
)

// Echo posts its arguments back to the channel, joined by single spaces.
func Echo(_ context.Context, inv *cmd.Invocation) error {
	return inv.Send(strings.Join(inv.Args, " "))
}
