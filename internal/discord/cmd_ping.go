package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// PingCommand replies with the contest API's round-trip time
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check that the bot and the contest API are up",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			start := time.Now()
			if !client.Ping(ctx) {
				return MsgPongAPIDown, nil
			}
			return fmt.Sprintf(MsgPong, time.Since(start).Round(time.Millisecond)), nil
		}, ResponseConfig{Title: "Ping", Color: ColorInfo})
	}

	return cmd, handler
}
