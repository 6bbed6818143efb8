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

// createWarningsCommand creates the /warnings command
func createWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"warnings",
		"View warnings issued to a user",
		"mod",
		warningsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to check warnings for",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).RequiresDatabase()
}

// warningsHandler handles the /warnings command
func warningsHandler(ctx *discord.CommandContext) error {
	targetUser := ctx.GetUserOption("user")
	if targetUser == nil {
		return ctx.ReplyEphemeral("You must specify a user.")
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	history, err := database.NewWarningService(database.Get()).ListWarningsForUser(dbCtx, targetUser.ID)
	if err != nil {
		logger.Error("Failed to fetch user warnings: "+err.Error(), "Warnings")
		return ctx.ReplyEphemeral("There was an error while fetching the warnings!")
	}

	if len(history) == 0 {
		return ctx.ReplyEphemeral(fmt.Sprintf("%s has no warnings.", tag(targetUser)))
	}

	pages := warnings.Paginate(history, warnings.DefaultPageSize)
	embeds := make([]*discordgo.MessageEmbed, 0, len(pages))
	for i, page := range pages {
		embeds = append(embeds, historyEmbed(targetUser, page, len(history), i+1, len(pages)))
	}

	logger.Info(fmt.Sprintf("Warnings checked for %s by %s", tag(targetUser), tag(ctx.User())), "Warnings")
	return presentPages(ctx, embeds)
}

// historyEmbed renders one page of a member's warning history
func historyEmbed(target *discordgo.User, page []models.WarningDetail, total, pageNum, pageCount int) *discordgo.MessageEmbed {
	description := fmt.Sprintf("Total Warnings: %d", total)
	if pageCount > 1 {
		description = fmt.Sprintf("Total Warnings: %d (page %d of %d)", total, pageNum, pageCount)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Warnings for %s", tag(target)),
		Description: description,
		Color:       colorHistory,
		Footer:      brandFooterBlock(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	for _, w := range page {
		value := fmt.Sprintf("Description: %s\nNotes: %s\nIssued by: %s",
			truncate(w.TemplateDescription, 512), w.NotesOrDefault(), w.IssuerName)
		if w.Severity != models.SeverityUnset {
			value += fmt.Sprintf("\nSeverity: %s", w.Severity)
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Warning #%d - %s (%s)", w.ID, truncate(w.TemplateTitle, 80), w.IssuedAt.Format("2006-01-02 15:04")),
			Value: truncate(value, embedFieldValueMax),
		})
	}
	return embed
}
