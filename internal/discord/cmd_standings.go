package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// StandingsCommand shows the live leaderboard
func StandingsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "standings",
		Description: "Show a contest's leaderboard",
		Options:     []*discordgo.ApplicationCommandOption{contestCommandOption()},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			contestID, err := contestOption(optionMap(i))
			if err != nil {
				return "", err
			}
			entries, err := client.GetLeaderboard(ctx, contestID)
			if err != nil {
				return "", err
			}
			return formatStandings(entries, MaxStandingsShown), nil
		}, ResponseConfig{
			Title: "📊 Standings",
			Color: ColorInfo,
		})
	}

	return cmd, handler
}

// HistoryCommand shows the caller's own predictions and scores
func HistoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "history",
		Description: "Show your predictions in a contest",
		Options:     []*discordgo.ApplicationCommandOption{contestCommandOption()},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			contestID, err := contestOption(optionMap(i))
			if err != nil {
				return "", err
			}
			detail, err := client.GetContest(ctx, contestID)
			if err != nil {
				return "", err
			}
			history, err := client.GetHistory(ctx, contestID, participantFor(getInteractionUser(i)))
			if err != nil {
				return "", err
			}

			ordinals := make(map[string]int, len(detail.Questions))
			for _, q := range detail.Questions {
				ordinals[q.ID.String()] = q.Ordinal
			}
			return formatHistory(history, ordinals), nil
		}, ResponseConfig{
			Title: "📜 Your Predictions",
			Color: ColorInfo,
		})
	}

	return cmd, handler
}
