package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

var errNoAnnounceChannel = errors.New("no announcement channel configured")

// Bot ties a Discord gateway session to the contest API
type Bot struct {
	Session         *discordgo.Session
	Client          *APIClient
	AppID           string
	AnnounceChannel string
	Registry        *CommandRegistry
}

// New creates a bot with every slash command registered
func New(cfg Config) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create Discord session: %w", err)
	}

	registry := NewCommandRegistry()
	registry.RegisterAll(AllCommands()...)

	return &Bot{
		Session:         s,
		Client:          NewAPIClient(cfg.APIURL, cfg.APIKey),
		AppID:           cfg.AppID,
		AnnounceChannel: cfg.AnnounceChannel,
		Registry:        registry,
	}, nil
}

// Run opens the gateway and blocks until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	b.Session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Discord gateway ready", "user", r.User.Username, "guilds", len(r.Guilds))
	})
	b.Session.AddHandler(b.onInteraction)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("open Discord gateway: %w", err)
	}
	defer func() {
		if err := b.Session.Close(); err != nil {
			slog.Warn("Failed to close Discord session", "error", err)
		}
	}()

	<-ctx.Done()
	return nil
}

// Announce posts embed to the announcement channel
func (b *Bot) Announce(embed *discordgo.MessageEmbed) error {
	if b.AnnounceChannel == "" {
		return errNoAnnounceChannel
	}
	if _, err := b.Session.ChannelMessageSendEmbed(b.AnnounceChannel, embed); err != nil {
		return fmt.Errorf("send announcement: %w", err)
	}
	return nil
}

func (b *Bot) stats() *Stats {
	if b.Registry == nil {
		return nil
	}
	return b.Registry.Stats
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.Registry == nil {
		return
	}
	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		HandleAutocomplete(s, i, b.Client)
	case discordgo.InteractionApplicationCommand:
		b.Registry.Handle(s, i, b.Client)
	}
}
