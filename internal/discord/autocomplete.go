package discord

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

// HandleAutocomplete answers autocomplete requests for the contest option
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	data := i.ApplicationCommandData()

	var focused *discordgo.ApplicationCommandInteractionDataOption
	for _, opt := range data.Options {
		if opt.Focused {
			focused = opt
			break
		}
	}
	if focused == nil || focused.Name != OptionContest {
		slog.Warn("Unhandled autocomplete option", "command", data.Name)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	// Only /result makes sense for finished contests
	state := domain.ContestStateActive
	if data.Name == "result" {
		state = domain.ContestStateFinalized
	}
	contests, err := client.ListContests(ctx, state, MaxAutocomplete)
	if err != nil {
		slog.Error("Failed to list contests for autocomplete", "error", err)
	}

	choices := contestChoices(contests, focused.StringValue())
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	}); err != nil {
		slog.Error("Failed to respond to autocomplete", "error", err)
	}
}

// contestChoices filters contests by a case-insensitive name or ID fragment
func contestChoices(contests []domain.Contest, typed string) []*discordgo.ApplicationCommandOptionChoice {
	typed = strings.ToLower(strings.TrimSpace(typed))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(contests))
	for _, c := range contests {
		if typed != "" &&
			!strings.Contains(strings.ToLower(c.Name), typed) &&
			!strings.HasPrefix(c.ID.String(), typed) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncate(c.Name, 100),
			Value: c.ID.String(),
		})
		if len(choices) >= MaxAutocomplete {
			break
		}
	}
	return choices
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
