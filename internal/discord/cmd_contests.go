package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

const contestListLimit = 10

// ContestsCommand lists contests, optionally by state
func ContestsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "contests",
		Description: "List prediction contests",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionState,
				Description: "Only show contests in this state",
				Required:    false,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Upcoming", Value: string(domain.ContestStatePending)},
					{Name: "Active", Value: string(domain.ContestStateActive)},
					{Name: "Evaluating", Value: string(domain.ContestStateEvaluating)},
					{Name: "Finalized", Value: string(domain.ContestStateFinalized)},
					{Name: "Cancelled", Value: string(domain.ContestStateCancelled)},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			var state domain.ContestState
			if opt, ok := optionMap(i)[OptionState]; ok {
				state = domain.ContestState(opt.StringValue())
			}
			contests, err := client.ListContests(ctx, state, contestListLimit)
			if err != nil {
				return "", err
			}
			return formatContestList(contests), nil
		}, ResponseConfig{
			Title: "🏆 Contests",
			Color: ColorInfo,
		})
	}

	return cmd, handler
}

// ContestCommand shows a contest and its questions
func ContestCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "contest",
		Description: "Show a contest's questions and options",
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
			return formatContestDetail(detail), nil
		}, ResponseConfig{
			Title: "📋 Contest",
			Color: ColorInfo,
		})
	}

	return cmd, handler
}
