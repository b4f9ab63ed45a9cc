package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
)

// ResultCommand shows a finalized contest's payouts
func ResultCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "result",
		Description: "Show a finished contest's prizes",
		Options:     []*discordgo.ApplicationCommandOption{contestCommandOption()},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			contestID, err := contestOption(optionMap(i))
			if err != nil {
				return "", err
			}
			result, err := client.GetResult(ctx, contestID)
			switch {
			case errors.Is(err, ErrResultPending):
				return MsgResultPending, nil
			case errors.Is(err, ErrResultCancelled):
				return MsgContestCancelled, nil
			case err != nil:
				return "", err
			}
			return formatResult(result), nil
		}, ResponseConfig{
			Title: "🏁 Final Results",
			Color: ColorGold,
		})
	}

	return cmd, handler
}
