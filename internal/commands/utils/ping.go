// Package utils provides general utility commands.
package utils

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/voidswithin/cipher/pkg/discord"
)

// createPingCommand creates the /ping command
func createPingCommand() *discord.Command {
	return discord.NewCommand(
		"ping",
		"Replies with the bot's latency",
		"utils",
		pingHandler,
	)
}

// pingHandler handles the /ping command
func pingHandler(ctx *discord.CommandContext) error {
	latency := ctx.Client.Session.HeartbeatLatency().Milliseconds()

	embed := &discordgo.MessageEmbed{
		Title:       "🏓 Pong!",
		Description: fmt.Sprintf("API Latency: %dms", latency),
		Color:       0x6e00f5,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	return ctx.ReplyEmbed(embed)
}
