package cmd

// Options is the dispatch policy attached to a single command.
type Options struct {
	MinArgs int
	// MaxArgs below zero means the argument count is unbounded.
	MaxArgs       int
	DisplayInHelp bool
	HelpMessage   string
	// UsageMessage is a template; %p expands to the prefix, %f to prefix+name
	// and %c to the command name. Empty disables usage diagnostics.
	UsageMessage string
	// RequiredPermission is a discordgo permission bit set, 0 for none.
	RequiredPermission int64
	DMAllowed          bool
}

// DefaultOptions returns the policy every command starts from.
func DefaultOptions() Options {
	return Options{
		MinArgs:            0,
		MaxArgs:            -1,
		DisplayInHelp:      true,
		HelpMessage:        "No help available",
		UsageMessage:       "",
		RequiredPermission: 0,
		DMAllowed:          false,
	}
}

// Option overrides a single field of Options.
type Option func(*Options)

// With returns a copy of o with opts applied in order. Fields not touched by
// any option keep their value.
func (o Options) With(opts ...Option) Options {
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func MinArgs(n int) Option {
	return func(o *Options) { o.MinArgs = n }
}

func MaxArgs(n int) Option {
	return func(o *Options) { o.MaxArgs = n }
}

func DisplayInHelp(show bool) Option {
	return func(o *Options) { o.DisplayInHelp = show }
}

func HelpMessage(msg string) Option {
	return func(o *Options) { o.HelpMessage = msg }
}

func UsageMessage(tmpl string) Option {
	return func(o *Options) { o.UsageMessage = tmpl }
}

// RequiredPermission sets the permission bits checked in guild channels,
// e.g. discordgo.PermissionManageMessages.
func RequiredPermission(perm int64) Option {
	return func(o *Options) { o.RequiredPermission = perm }
}

func DMAllowed(allowed bool) Option {
	return func(o *Options) { o.DMAllowed = allowed }
}
