package events

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/voidswithin/cipher/pkg/discord"
	"github.com/voidswithin/cipher/pkg/logger"
)

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(client *discord.ExtendedClient) {
	client.EventHandler.RegisterEvent(onMessageCreate)
}

// onMessageCreate is called when a new message is created
func onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot {
		return
	}

	// Easter egg for the house band
	if strings.Contains(strings.ToLower(m.Content), "sleep token") {
		_, err := s.ChannelMessageSendReply(m.ChannelID, "Worship.", m.Reference())
		if err != nil {
			logger.Error(fmt.Sprintf("Error responding to Sleep Token mention: %v", err), "Message")
			return
		}
		logger.Debug("Responded to Sleep Token mention from "+m.Author.Username, "Message")
	}
}
