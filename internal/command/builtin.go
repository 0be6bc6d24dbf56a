// Package command holds the commands shipped with the bot binary.
package command

import "github.com/keshon/commandclient/pkg/cmd"

// Registrar accepts command registrations; *cmd.Registry and the Discord
// bot's command store implement it.
type Registrar interface {
	Register(name string, cb cmd.Callback, opts ...cmd.Option)
}

// RegisterBuiltins registers ping, echo and roll, each wrapped in mws.
func RegisterBuiltins(r Registrar, mws ...cmd.Middleware) {
	r.Register("ping", cmd.Apply(Ping, mws...),
		cmd.MaxArgs(0),
		cmd.HelpMessage("Replies with Pong"),
	)
	r.Register("echo", cmd.Apply(Echo, mws...),
		cmd.MinArgs(1),
		cmd.UsageMessage("%f <Message>"),
		cmd.HelpMessage("Repeats your message"),
		cmd.DMAllowed(true),
	)
	r.Register("roll", cmd.Apply(NewRoller(nil).Run, mws...),
		cmd.MinArgs(1),
		cmd.UsageMessage("%f <formula>, e.g. %f 2d6+1d4*2-3"),
		cmd.HelpMessage("Rolls dice like `2d20+1d6-2`"),
		cmd.DMAllowed(true),
	)
}
