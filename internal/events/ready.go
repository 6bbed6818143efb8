package events

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/voidswithin/cipher/pkg/discord"
	"github.com/voidswithin/cipher/pkg/logger"
)

// RegisterReadyEvent registers the ready event handler
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.EventHandler.RegisterEvent(onReady)
}

// onReady is called when the bot successfully connects to Discord
func onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Success(fmt.Sprintf("Ready! Logged in as %s", r.User.Username), "Ready")
	logger.Info(fmt.Sprintf("Connected to %d guilds", len(r.Guilds)), "Ready")

	err := s.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: "online",
		Activities: []*discordgo.Activity{
			{
				Name: "Community Challenges",
				Type: discordgo.ActivityTypeWatching,
			},
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error setting presence: %v", err), "Ready")
	}
}
