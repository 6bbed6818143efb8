// Package events provides the bot's gateway event handlers.
package events

import (
	"github.com/voidswithin/cipher/pkg/discord"
	"github.com/voidswithin/cipher/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("Registering bot events...", "Events")

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Message events
	RegisterMessageEvents(client)

	logger.Success("All events registered.", "Events")
}
