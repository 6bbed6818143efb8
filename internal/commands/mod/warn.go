package mod

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/voidswithin/cipher/pkg/database"
	"github.com/voidswithin/cipher/pkg/discord"
	cerrors "github.com/voidswithin/cipher/pkg/errors"
	"github.com/voidswithin/cipher/pkg/logger"
	"github.com/voidswithin/cipher/pkg/models"
	"github.com/voidswithin/cipher/pkg/mqtt"
	"github.com/voidswithin/cipher/pkg/warnings"
)

// createWarnCommand creates the /warn command: direct issuance against a
// known template id, no interactive steps.
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Issue a warning to a user",
		"mod",
		warnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to warn",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "warning_id",
			Description: "The ID of the warning template to use",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "notes",
			Description: "Additional notes for this warning",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).RequiresDatabase()
}

// warnHandler handles the /warn command
func warnHandler(ctx *discord.CommandContext) error {
	targetUser := ctx.GetUserOption("user")
	if targetUser == nil {
		return ctx.ReplyEphemeral("You must specify a user to warn.")
	}
	templateID := ctx.GetIntOption("warning_id")

	var notes *string
	if n := ctx.GetStringOption("notes"); n != "" {
		notes = &n
	}

	moderator := actorFromUser(ctx.User())
	target := actorFromUser(targetUser)

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := database.Get()
	template, err := database.NewTemplateService(db).GetTemplate(dbCtx, templateID)
	if err != nil {
		if cerrors.IsReference(err) {
			return ctx.ReplyEphemeral("Invalid warning template ID. Use /listwarnings to see available templates.")
		}
		logger.Error("Failed to load warning template: "+err.Error(), "Warn")
		return ctx.ReplyEphemeral("There was an error while issuing the warning!")
	}

	warningID, err := issueWarning(dbCtx, db, target, moderator, template.ID, notes, models.SeverityUnset)
	if err != nil {
		logger.Error("Failed to record warning: "+err.Error(), "Warn")
		return ctx.ReplyEphemeral("There was an error while issuing the warning!")
	}

	// Delivery is detached: the warning is recorded and reported as
	// issued no matter what happens to the DM.
	tracker := warnings.NewTracker(warningID, target, moderator, *template, notes, models.SeverityUnset)
	go deliverWarning(ctx.Client, tracker)

	logger.Info(fmt.Sprintf("Warning issued to %s by %s - Template ID: %d", actorTag(target), actorTag(moderator), template.ID), "Warn")
	return ctx.ReplyEmbed(issuedEmbed(moderator, target, *template, notes, models.SeverityUnset))
}

// issueWarning persists one warning through the upsert-then-record
// sequence and publishes the issued event.
func issueWarning(ctx context.Context, db *database.Database, target, moderator warnings.Actor, templateID int64, notes *string, severity models.Severity) (int64, error) {
	issuer := &warnings.Issuer{
		Users:    database.NewUserService(db),
		Warnings: database.NewWarningService(db),
	}

	warningID, err := issuer.Issue(ctx, target, moderator, templateID, notes, severity)
	if err != nil {
		return 0, err
	}

	mqtt.Get().WarningIssued(mqtt.WarningEvent{
		WarningID: warningID,
		UserID:    target.ID,
		IssuedBy:  moderator.ID,
		Severity:  string(severity),
	})
	return warningID, nil
}
