package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/keshon/commandclient/pkg/cmd"
	"github.com/keshon/commandclient/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const (
	DefaultPrefix            = "!"
	DefaultNotAllowedMessage = "You aren't allowed to run this command."
	HelpCommandName          = "help"
)

// Commands is the command store the bot dispatches against.
// *cmd.Registry implements it.
type Commands interface {
	Register(name string, cb cmd.Callback, opts ...cmd.Option)
	Unregister(name string)
	EditCallback(name string, cb cmd.Callback)
	EditOptions(name string, opts ...cmd.Option)
	Lookup(name string) (cmd.Entry, bool)
	Entries() []cmd.Entry
}

// Bot watches incoming messages and dispatches prefixed commands.
type Bot struct {
	commands Commands
	log      zerolog.Logger

	mu                sync.RWMutex
	session           Session
	ctx               context.Context
	selfID            string
	prefix            string
	notAllowedMessage string
	helpEnabled       bool
	invertPermission  bool
	connectRetry      retrylimit.Config
}

// Option configures a Bot at construction.
type Option func(*Bot)

func WithPrefix(prefix string) Option {
	return func(b *Bot) { b.prefix = prefix }
}

func WithCommands(c Commands) Option {
	return func(b *Bot) { b.commands = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(b *Bot) { b.log = l }
}

func WithNotAllowedMessage(msg string) Option {
	return func(b *Bot) { b.notAllowedMessage = msg }
}

func WithHelp(enabled bool) Option {
	return func(b *Bot) { b.helpEnabled = enabled }
}

// WithInvertedPermissionCheck makes the permission guard refuse authors who
// hold the required permission instead of those who lack it.
func WithInvertedPermissionCheck(inverted bool) Option {
	return func(b *Bot) { b.invertPermission = inverted }
}

// WithSession sets the session used for lookups and replies. Run and Attach
// set it from a live *discordgo.Session.
func WithSession(s Session) Option {
	return func(b *Bot) { b.session = s }
}

// WithSelfID sets the bot's own user ID, normally learned from the Ready event.
func WithSelfID(id string) Option {
	return func(b *Bot) { b.selfID = id }
}

// WithConnectRetry sets how Run retries opening the gateway connection.
func WithConnectRetry(cfg retrylimit.Config) Option {
	return func(b *Bot) { b.connectRetry = cfg }
}

// NewBot creates a bot and registers the help command.
func NewBot(opts ...Option) *Bot {
	b := &Bot{
		log:               zerolog.Nop(),
		ctx:               context.Background(),
		prefix:            DefaultPrefix,
		notAllowedMessage: DefaultNotAllowedMessage,
		helpEnabled:       true,
		connectRetry:      retrylimit.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.commands == nil {
		b.commands = cmd.NewRegistry()
	}

	b.commands.Register(HelpCommandName, b.help,
		cmd.DMAllowed(true),
		cmd.HelpMessage("Displays the list of available commands"),
	)
	return b
}

// Commands returns the command store.
func (b *Bot) Commands() Commands { return b.commands }

// Register is shorthand for Commands().Register.
func (b *Bot) Register(name string, cb cmd.Callback, opts ...cmd.Option) {
	b.commands.Register(name, cb, opts...)
}

func (b *Bot) Prefix() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.prefix
}

// SetPrefix changes the prefix; the next dispatched message sees it.
func (b *Bot) SetPrefix(prefix string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prefix = prefix
}

func (b *Bot) NotAllowedMessage() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.notAllowedMessage
}

func (b *Bot) SetNotAllowedMessage(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notAllowedMessage = msg
}

func (b *Bot) HelpEnabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.helpEnabled
}

func (b *Bot) SetHelpEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.helpEnabled = enabled
}

func (b *Bot) state() (Session, string, context.Context) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.session, b.selfID, b.ctx
}

// Attach subscribes the bot to message and ready events of s. It returns a
// function removing both handlers.
func (b *Bot) Attach(s *discordgo.Session) func() {
	b.mu.Lock()
	b.session = stateSession{s}
	if s.State != nil && s.State.User != nil {
		b.selfID = s.State.User.ID
	}
	b.mu.Unlock()

	return b.subscribe(s)
}

// eventSource is the handler registration side of *discordgo.Session.
type eventSource interface {
	AddHandler(handler interface{}) func()
}

func (b *Bot) subscribe(src eventSource) func() {
	removeReady := src.AddHandler(b.onReady)
	removeMessage := src.AddHandler(b.onMessageCreate)
	return func() {
		removeReady()
		removeMessage()
	}
}

// Run connects to Discord with token and dispatches messages until ctx is
// cancelled.
func (b *Bot) Run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.mu.Lock()
	b.ctx = ctx
	b.mu.Unlock()

	configureIntents(dg)
	detach := b.Attach(dg)
	defer detach()

	retry := b.connectRetry
	retry.OnRetry = func(attempt int, err error, wait time.Duration) {
		b.log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("Failed to open Discord session, retrying")
	}
	if err := retrylimit.Do(ctx, retry, dg.Open); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	b.log.Info().Msg("Shutdown signal received, closing session")
	return nil
}

func configureIntents(dg *discordgo.Session) {
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
}

// onReady records the bot's own identity, needed by the reply gate.
func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User == nil {
		return
	}
	b.mu.Lock()
	b.selfID = r.User.ID
	b.mu.Unlock()

	b.log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Str("prefix", b.Prefix()).
		Msg("Discord bot is running")
}

// onMessageCreate is called when a message is created
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || (s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID) {
		return
	}

	_, _, ctx := b.state()
	outcome, err := b.Dispatch(ctx, m.Message)
	if err != nil {
		b.log.Error().Err(err).
			Str("outcome", outcome.String()).
			Str("channel_id", m.ChannelID).
			Str("user_id", m.Author.ID).
			Msg("Error running command")
	}
}
