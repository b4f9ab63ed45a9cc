package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

const defaultConfidence = 100

var (
	minQuestion   = float64(1)
	minConfidence = float64(0)
)

// PredictCommand submits or replaces a prediction
func PredictCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "predict",
		Description: "Make or change a prediction",
		Options: []*discordgo.ApplicationCommandOption{
			contestCommandOption(),
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        OptionQuestion,
				Description: "Question number",
				Required:    true,
				MinValue:    &minQuestion,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionChoice,
				Description: "Option ID to pick",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        OptionConfidence,
				Description: "Confidence from 0 to 100 (default: 100)",
				Required:    false,
				MinValue:    &minConfidence,
				MaxValue:    100,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			opts := optionMap(i)
			contestID, err := contestOption(opts)
			if err != nil {
				return "", err
			}
			ordinal := int(opts[OptionQuestion].IntValue())
			confidence := defaultConfidence
			if opt, ok := opts[OptionConfidence]; ok {
				confidence = int(opt.IntValue())
			}

			detail, err := client.GetContest(ctx, contestID)
			if err != nil {
				return "", err
			}
			question, err := questionByOrdinal(detail.Questions, ordinal)
			if err != nil {
				return "", err
			}

			sub, err := client.SubmitPrediction(ctx, SubmitPredictionRequest{
				ParticipantID: participantFor(getInteractionUser(i)),
				QuestionID:    question.ID,
				Choice:        strings.TrimSpace(opts[OptionChoice].StringValue()),
				Confidence:    confidence,
			})
			if err != nil {
				return "", err
			}
			return formatSubmission(sub, ordinal), nil
		}, ResponseConfig{
			Title: "🔮 Prediction Saved",
			Color: ColorSuccess,
		})
	}

	return cmd, handler
}

func questionByOrdinal(questions []domain.PredictionQuestion, ordinal int) (*domain.PredictionQuestion, error) {
	for idx := range questions {
		if questions[idx].Ordinal == ordinal {
			return &questions[idx], nil
		}
	}
	return nil, fmt.Errorf("question not found: Q%d", ordinal)
}
