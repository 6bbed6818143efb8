// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (utils, mod).
package commands

import (
	"github.com/voidswithin/cipher/internal/commands/mod"
	"github.com/voidswithin/cipher/internal/commands/utils"
	"github.com/voidswithin/cipher/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands
	utils.RegisterUtilCommands(client)

	// Moderation commands (/addwarning, /listwarnings, /warn, /warnmenu, /warnings)
	mod.RegisterModCommands(client)
}
