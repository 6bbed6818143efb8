package mod

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/voidswithin/cipher/pkg/database"
	"github.com/voidswithin/cipher/pkg/discord"
	cerrors "github.com/voidswithin/cipher/pkg/errors"
	"github.com/voidswithin/cipher/pkg/logger"
	"github.com/voidswithin/cipher/pkg/models"
)

// createAddWarningCommand creates the /addwarning command
func createAddWarningCommand() *discord.Command {
	return discord.NewCommand(
		"addwarning",
		"Add a new warning template to the database",
		"mod",
		addWarningHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "title",
			Description: "The title of the warning",
			Required:    true,
			MaxLength:   models.TemplateTitleMaxLen,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "description",
			Description: "The description of the warning",
			Required:    true,
			MaxLength:   models.TemplateDescriptionMaxLen,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).RequiresDatabase()
}

// addWarningHandler handles the /addwarning command
func addWarningHandler(ctx *discord.CommandContext) error {
	title := ctx.GetStringOption("title")
	description := ctx.GetStringOption("description")
	creator := ctx.User()

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := database.Get()
	if err := database.NewUserService(db).UpsertUser(dbCtx, creator.ID, creator.Username, creator.Discriminator, creator.AvatarURL("")); err != nil {
		logger.Error("Failed to upsert template creator: "+err.Error(), "AddWarning")
		return ctx.ReplyEphemeral("There was an error while adding the warning template!")
	}

	id, err := database.NewTemplateService(db).CreateTemplate(dbCtx, title, description, creator.ID)
	if err != nil {
		if cerrors.IsValidation(err) {
			return ctx.ReplyEphemeral(err.Error())
		}
		logger.Error("Failed to create warning template: "+err.Error(), "AddWarning")
		return ctx.ReplyEphemeral("There was an error while adding the warning template!")
	}

	embed := &discordgo.MessageEmbed{
		Author:      brandAuthor(tag(creator)),
		Title:       "Warning Template Added",
		Description: fmt.Sprintf("%s has created a new pre-defined warning. ID: %d", tag(creator), id),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Warning Name", Value: truncate(title, embedFieldValueMax)},
			{Name: "Warning Description", Value: truncate(description, embedFieldValueMax)},
			{Name: "Warning ID", Value: strconv.FormatInt(id, 10)},
		},
		Color:     colorBrand,
		Footer:    brandFooterBlock(),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	logger.Info(fmt.Sprintf("Warning template added by %s - ID: %d", tag(creator), id), "AddWarning")
	return ctx.ReplyEmbed(embed)
}
