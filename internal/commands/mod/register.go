package mod

import (
	"github.com/voidswithin/cipher/pkg/discord"
)

// RegisterModCommands registers all moderation commands
func RegisterModCommands(client *discord.ExtendedClient) {
	client.CommandHandler.RegisterCommand(createAddWarningCommand())
	client.CommandHandler.RegisterCommand(createListWarningsCommand())
	client.CommandHandler.RegisterCommand(createWarnCommand())
	client.CommandHandler.RegisterCommand(createWarnMenuCommand())
	client.CommandHandler.RegisterCommand(createWarningsCommand())
}
