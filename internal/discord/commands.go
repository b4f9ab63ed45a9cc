package discord

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient)

// CommandFactory builds a command definition and its handler
type CommandFactory func() (*discordgo.ApplicationCommand, CommandHandler)

// CommandRegistry maps command names to their definitions and handlers
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
	Stats    *Stats
}

// NewCommandRegistry creates an empty registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
		Stats:    NewStats(),
	}
}

// RegisterAll adds the command produced by each factory, replacing any
// earlier command of the same name
func (r *CommandRegistry) RegisterAll(factories ...CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory()
		r.Commands[cmd.Name] = cmd
		r.Handlers[cmd.Name] = handler
	}
}

// Handle dispatches a slash command. Unknown names are ignored.
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	h, ok := r.Handlers[i.ApplicationCommandData().Name]
	if !ok {
		return
	}
	r.Stats.Record(time.Now())
	h(s, i, client)
}

// Definitions returns the registered commands ordered by name
func (r *CommandRegistry) Definitions() []*discordgo.ApplicationCommand {
	return slices.SortedFunc(maps.Values(r.Commands), byName)
}

// AllCommands lists the bot's slash commands
func AllCommands() []CommandFactory {
	return []CommandFactory{
		PingCommand,
		ContestsCommand,
		ContestCommand,
		PredictCommand,
		StandingsCommand,
		HistoryCommand,
		ResultCommand,
	}
}

// SyncCommands publishes the registry to Discord. The bulk overwrite is
// skipped when Discord already has an identical set, since it counts
// against a tight daily limit.
func (b *Bot) SyncCommands(force bool) error {
	existing, err := b.Session.ApplicationCommands(b.AppID, "")
	if err != nil {
		return fmt.Errorf("fetch registered commands: %w", err)
	}

	desired := b.Registry.Definitions()
	if !force && sameCommandSet(existing, desired) {
		slog.Info("Slash commands up to date", "count", len(desired))
		return nil
	}

	slog.Info("Publishing slash commands", "existing", len(existing), "desired", len(desired), "forced", force)
	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desired); err != nil {
		return fmt.Errorf("publish commands: %w", err)
	}
	return nil
}

func byName(a, b *discordgo.ApplicationCommand) int {
	return strings.Compare(a.Name, b.Name)
}

// sameCommandSet compares two command sets ignoring order
func sameCommandSet(a, b []*discordgo.ApplicationCommand) bool {
	return slices.EqualFunc(
		slices.SortedFunc(slices.Values(a), byName),
		slices.SortedFunc(slices.Values(b), byName),
		sameCommand,
	)
}

func sameCommand(a, b *discordgo.ApplicationCommand) bool {
	return a.Name == b.Name &&
		a.Description == b.Description &&
		slices.EqualFunc(a.Options, b.Options, sameOption)
}

func sameOption(a, b *discordgo.ApplicationCommandOption) bool {
	return a.Type == b.Type &&
		a.Name == b.Name &&
		a.Description == b.Description &&
		a.Required == b.Required &&
		a.Autocomplete == b.Autocomplete &&
		slices.EqualFunc(a.Choices, b.Choices, func(x, y *discordgo.ApplicationCommandOptionChoice) bool {
			return x.Name == y.Name && x.Value == y.Value
		})
}
