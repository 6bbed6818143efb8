package mod

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/voidswithin/cipher/pkg/database"
	"github.com/voidswithin/cipher/pkg/discord"
	"github.com/voidswithin/cipher/pkg/logger"
	"github.com/voidswithin/cipher/pkg/models"
	"github.com/voidswithin/cipher/pkg/warnings"
)

// createListWarningsCommand creates the /listwarnings command
func createListWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"listwarnings",
		"List all available warning templates",
		"mod",
		listWarningsHandler,
	).WithUserPermissions(discordgo.PermissionModerateMembers).RequiresDatabase()
}

// listWarningsHandler handles the /listwarnings command
func listWarningsHandler(ctx *discord.CommandContext) error {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	templates, err := database.NewTemplateService(database.Get()).ListTemplates(dbCtx)
	if err != nil {
		logger.Error("Failed to list warning templates: "+err.Error(), "ListWarnings")
		return ctx.ReplyEphemeral("There was an error while fetching the warning templates!")
	}

	if len(templates) == 0 {
		return ctx.ReplyEphemeral("No warning templates found.")
	}

	pages := warnings.Paginate(templates, warnings.DefaultPageSize)
	embeds := make([]*discordgo.MessageEmbed, 0, len(pages))
	for i, page := range pages {
		embeds = append(embeds, templateCatalogEmbed(page, i+1, len(pages)))
	}

	logger.Info("Warning templates listed by "+tag(ctx.User()), "ListWarnings")
	return presentPages(ctx, embeds)
}

// templateCatalogEmbed renders one page of the template catalog
func templateCatalogEmbed(page []models.WarningTemplate, pageNum, pageCount int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Warning Templates",
		Description: "Here are all available warning templates:",
		Color:       colorCatalog,
		Footer:      brandFooterBlock(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if pageCount > 1 {
		embed.Description = fmt.Sprintf("Here are all available warning templates (page %d of %d):", pageNum, pageCount)
	}

	for _, t := range page {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("ID: %d - %s", t.ID, truncate(t.Title, 100)),
			Value: truncate(t.Description, embedFieldValueMax),
		})
	}
	return embed
}
