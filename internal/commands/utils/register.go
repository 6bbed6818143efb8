package utils

import (
	"github.com/voidswithin/cipher/pkg/discord"
)

// RegisterUtilCommands registers all utility commands
func RegisterUtilCommands(client *discord.ExtendedClient) {
	client.CommandHandler.RegisterCommand(createPingCommand())
}
