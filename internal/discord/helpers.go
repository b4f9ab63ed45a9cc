package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// ParticipantPrefix namespaces Discord users among contest participants
const ParticipantPrefix = "discord:"

// commandTimeout bounds the API calls made for one interaction
const commandTimeout = 15 * time.Second

var errMissingContest = errors.New("a contest ID is required")

// ResponseConfig defines the visual properties of a command response embed
type ResponseConfig struct {
	Title string
	Color int
}

// handleEmbedResponse defers the response, runs action and edits in either
// the resulting embed or a friendly error.
func handleEmbedResponse(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	action func(ctx context.Context) (string, error),
	config ResponseConfig,
) {
	if !deferResponse(s, i) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	msg, err := action(ctx)
	if err != nil {
		slog.Error("Action failed", "title", config.Title, "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       config.Title,
		Description: msg,
		Color:       config.Color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: EmbedFooter,
		},
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// deferResponse acknowledges an interaction with a deferred message.
// Returns false if deferral failed.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// respondError edits the deferred response with message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respondError(s, i, formatFriendlyError(message))
}

// formatFriendlyError maps API failures onto the messages users see
func formatFriendlyError(msg string) string {
	msg = strings.TrimPrefix(msg, "API error: ")
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "deadline has passed"):
		return MsgDeadlinePassed
	case strings.Contains(lower, "locked"):
		return MsgSubmissionLocked
	case strings.Contains(lower, "not an option"):
		return MsgInvalidChoice
	case strings.Contains(lower, "not open"):
		return MsgContestNotOpen
	case strings.Contains(lower, "cancelled"):
		return MsgContestCancelled
	case strings.Contains(lower, "contest not found"), strings.Contains(lower, "invalid contest id"):
		return MsgContestNotFound
	case strings.Contains(lower, "question not found"):
		return MsgQuestionNotFound
	case strings.Contains(lower, "max retries exceeded"):
		return MsgServiceUnavailable
	}
	return "❌ " + msg
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild and DM contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// optionMap indexes the command's options by name
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

// participantFor maps a Discord user to a contest participant ID
func participantFor(user *discordgo.User) string {
	return ParticipantPrefix + user.ID
}

// displayParticipant renders a participant ID, mentioning Discord users
func displayParticipant(participantID string) string {
	if id, ok := strings.CutPrefix(participantID, ParticipantPrefix); ok {
		return "<@" + id + ">"
	}
	return participantID
}

// contestOption parses the required "contest" option
func contestOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption) (uuid.UUID, error) {
	opt, ok := opts[OptionContest]
	if !ok {
		return uuid.Nil, errMissingContest
	}
	id, err := uuid.Parse(strings.TrimSpace(opt.StringValue()))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid contest ID %q", opt.StringValue())
	}
	return id, nil
}

// contestCommandOption is the contest selector shared by most commands
func contestCommandOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         OptionContest,
		Description:  "Contest ID",
		Required:     true,
		Autocomplete: true,
	}
}
