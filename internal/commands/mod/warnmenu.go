package mod

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/voidswithin/cipher/pkg/database"
	"github.com/voidswithin/cipher/pkg/discord"
	"github.com/voidswithin/cipher/pkg/logger"
	"github.com/voidswithin/cipher/pkg/models"
	"github.com/voidswithin/cipher/pkg/warnings"
)

// selectMenuMaxOptions is Discord's limit for a single select menu
const selectMenuMaxOptions = 25

// createWarnMenuCommand creates the /warnmenu command: guided issuance
// through template selection and confirmation.
func createWarnMenuCommand() *discord.Command {
	return discord.NewCommand(
		"warnmenu",
		"Issue a warning through the guided template menu",
		"mod",
		warnMenuHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to warn",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "comments",
			Description: "Comments describing the member's conduct",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "severity",
			Description: "How severe the conduct was",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Low", Value: string(models.SeverityLow)},
				{Name: "Medium", Value: string(models.SeverityMedium)},
				{Name: "High", Value: string(models.SeverityHigh)},
			},
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).RequiresDatabase()
}

// warnMenuHandler handles the /warnmenu command
func warnMenuHandler(ctx *discord.CommandContext) error {
	targetUser := ctx.GetUserOption("user")
	if targetUser == nil {
		return ctx.ReplyEphemeral("You must specify a user to warn.")
	}
	comments := ctx.GetStringOption("comments")

	severity, err := models.ParseSeverity(ctx.GetStringOption("severity"))
	if err != nil {
		return ctx.ReplyEphemeral("Unknown severity. Choose low, medium or high.")
	}

	moderator := actorFromUser(ctx.User())
	target := actorFromUser(targetUser)

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	templates, err := database.NewTemplateService(database.Get()).ListTemplates(dbCtx)
	if err != nil {
		logger.Error("Failed to list warning templates: "+err.Error(), "WarnMenu")
		return ctx.ReplyEphemeral("There was an error while issuing the warning!")
	}
	if len(templates) == 0 {
		return ctx.ReplyEphemeral("No warning templates found. Create one with /addwarning first.")
	}

	wf := warnings.NewGuidedWorkflow(moderator, target, comments, severity, templates)
	runner := &menuRunner{ctx: ctx, wf: wf}
	runner.openMenu(templates)

	return ctx.ReplyComponents("", []*discordgo.MessageEmbed{runner.promptEmbed()}, runner.menuComponents(templates))
}

// menuRunner wires one guided workflow instance to the component
// registry. The workflow itself is a plain transition function; all
// Discord I/O happens here.
type menuRunner struct {
	ctx *discord.CommandContext
	wf  *warnings.Workflow

	mu       sync.Mutex
	selectID string
	confirm  string
	cancel   string
}

func (r *menuRunner) registry() *discord.ComponentRegistry {
	return r.ctx.Client.Components
}

// apply serializes workflow transitions across click and sweep goroutines
func (r *menuRunner) apply(ev warnings.Event) warnings.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wf.Apply(ev)
}

// openMenu arms the template selection step
func (r *menuRunner) openMenu(templates []models.WarningTemplate) {
	r.selectID = discord.NewComponentID()

	r.registry().Register(r.selectID, &discord.ComponentHandler{
		OwnerID:   r.wf.Moderator.ID,
		ExpiresAt: time.Now().Add(warnings.SelectTimeout),
		OnClick:   r.onSelect,
		OnExpire:  func() { r.onDeadline(warnings.StateSelectingTemplate) },
	})
}

func (r *menuRunner) onSelect(c *discord.ComponentContext) {
	values := c.Values()
	if len(values) == 0 {
		return
	}
	templateID, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		templateID = -1
	}

	switch r.apply(warnings.TemplateSelected{ActorID: c.Actor().ID, TemplateID: templateID}) {
	case warnings.EffectReportInvalidSelection:
		// Recoverable: the menu stays armed for another pick
		_ = c.RespondEphemeral("That template no longer exists. Pick another option.")

	case warnings.EffectPromptConfirmation:
		r.registry().Unregister(r.selectID)
		r.openConfirmation()
		_ = c.UpdateMessage([]*discordgo.MessageEmbed{r.confirmationEmbed()}, r.confirmComponents())
	}
}

// openConfirmation arms the Confirm/Cancel step with a fresh deadline.
// The id writes share r.mu with onDeadline: the select step's sweep may
// still be in flight when the confirmation step opens.
func (r *menuRunner) openConfirmation() {
	r.mu.Lock()
	r.confirm = discord.NewComponentID()
	r.cancel = discord.NewComponentID()
	confirmID, cancelID := r.confirm, r.cancel
	r.mu.Unlock()

	deadline := time.Now().Add(warnings.ConfirmTimeout)

	r.registry().Register(confirmID, &discord.ComponentHandler{
		OwnerID:   r.wf.Moderator.ID,
		ExpiresAt: deadline,
		OnClick:   r.onConfirm,
		OnExpire:  func() { r.onDeadline(warnings.StateAwaitingConfirmation) },
	})
	r.registry().Register(cancelID, &discord.ComponentHandler{
		OwnerID:   r.wf.Moderator.ID,
		ExpiresAt: deadline,
		OnClick:   r.onCancel,
	})
}

func (r *menuRunner) onConfirm(c *discord.ComponentContext) {
	if r.apply(warnings.Confirmed{ActorID: c.Actor().ID}) != warnings.EffectPersist {
		return
	}
	r.registry().Unregister(r.stepIDs()...)

	var notes *string
	if r.wf.Comments != "" {
		comments := r.wf.Comments
		notes = &comments
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	warningID, err := issueWarning(dbCtx, database.Get(), r.wf.Target, r.wf.Moderator, r.wf.Template.ID, notes, r.wf.Severity)
	if err != nil {
		logger.Error("Failed to record warning: "+err.Error(), "WarnMenu")
		_ = c.UpdateMessage([]*discordgo.MessageEmbed{r.failureEmbed()}, []discordgo.MessageComponent{})
		return
	}

	tracker := warnings.NewTracker(warningID, r.wf.Target, r.wf.Moderator, *r.wf.Template, notes, r.wf.Severity)
	go deliverWarning(r.ctx.Client, tracker)

	logger.Info(fmt.Sprintf("Warning issued to %s by %s - Template ID: %d",
		actorTag(r.wf.Target), actorTag(r.wf.Moderator), r.wf.Template.ID), "WarnMenu")
	_ = c.UpdateMessage(
		[]*discordgo.MessageEmbed{issuedEmbed(r.wf.Moderator, r.wf.Target, *r.wf.Template, notes, r.wf.Severity)},
		[]discordgo.MessageComponent{},
	)
}

func (r *menuRunner) onCancel(c *discord.ComponentContext) {
	if r.apply(warnings.CancelRequested{ActorID: c.Actor().ID}) != warnings.EffectAbort {
		return
	}
	r.registry().Unregister(r.stepIDs()...)
	_ = c.UpdateMessage([]*discordgo.MessageEmbed{r.cancelledEmbed()}, []discordgo.MessageComponent{})
}

// stepIDs snapshots the component ids of every armed step
func (r *menuRunner) stepIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return []string{r.selectID, r.confirm, r.cancel}
}

// onDeadline fires when the window armed for step lapses with no
// response. A deadline whose step the workflow has already left is
// stale and ignored, so a sweep racing a last-moment click cannot tear
// down the step that click just opened.
func (r *menuRunner) onDeadline(step warnings.WorkflowState) {
	if r.apply(warnings.DeadlineElapsed{Step: step}) != warnings.EffectExpire {
		return
	}
	r.registry().Unregister(r.stepIDs()...)
	_ = r.ctx.EditReplyComponents([]*discordgo.MessageEmbed{r.timedOutEmbed()}, []discordgo.MessageComponent{})
}

func (r *menuRunner) menuComponents(templates []models.WarningTemplate) []discordgo.MessageComponent {
	count := len(templates)
	if count > selectMenuMaxOptions {
		count = selectMenuMaxOptions
	}

	options := make([]discordgo.SelectMenuOption, 0, count)
	for _, t := range templates[:count] {
		options = append(options, discordgo.SelectMenuOption{
			Label:       truncate(t.Title, 100),
			Value:       strconv.FormatInt(t.ID, 10),
			Description: truncate(t.Description, 100),
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    r.selectID,
					Placeholder: "Select a warning template",
					Options:     options,
				},
			},
		},
	}
}

func (r *menuRunner) confirmComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Confirm", Style: discordgo.SuccessButton, CustomID: r.confirm},
				discordgo.Button{Label: "Cancel", Style: discordgo.DangerButton, CustomID: r.cancel},
			},
		},
	}
}

// workflowFields renders the accumulated input shown on every step
func (r *menuRunner) workflowFields() []*discordgo.MessageEmbedField {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Comments", Value: truncate(r.wf.Comments, embedFieldValueMax)},
	}
	if r.wf.Severity != models.SeverityUnset {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Severity", Value: r.wf.Severity.String()})
	}
	return fields
}

func (r *menuRunner) promptEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Author:      brandAuthor(brandName),
		Title:       "Issue a Warning",
		Description: fmt.Sprintf("Select the warning template to issue to %s.", actorTag(r.wf.Target)),
		Fields:      r.workflowFields(),
		Color:       colorBrand,
		Footer:      brandFooterBlock(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func (r *menuRunner) confirmationEmbed() *discordgo.MessageEmbed {
	fields := append([]*discordgo.MessageEmbedField{
		{Name: "Warning Name", Value: truncate(r.wf.Template.Title, embedFieldValueMax)},
		{Name: "Warning Description", Value: truncate(r.wf.Template.Description, embedFieldValueMax)},
	}, r.workflowFields()...)

	return &discordgo.MessageEmbed{
		Author:      brandAuthor(brandName),
		Title:       "Confirm Warning",
		Description: fmt.Sprintf("Review the warning below, then confirm to issue it to %s.", actorTag(r.wf.Target)),
		Fields:      fields,
		Color:       colorBrand,
		Footer:      brandFooterBlock(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func (r *menuRunner) cancelledEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Author:      brandAuthor(brandName),
		Title:       "Warning Cancelled",
		Description: fmt.Sprintf("No warning was issued to %s.", actorTag(r.wf.Target)),
		Color:       colorBrand,
		Footer:      brandFooterBlock(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func (r *menuRunner) timedOutEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Author:      brandAuthor(brandName),
		Title:       "Warning Issuance Timed Out",
		Description: "No response was received in time. No warning was issued.",
		Color:       colorBrand,
		Footer:      brandFooterBlock(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func (r *menuRunner) failureEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Author:      brandAuthor(brandName),
		Title:       "Warning Failed",
		Description: "There was an error while issuing the warning. No warning was recorded.",
		Color:       colorBrand,
		Footer:      brandFooterBlock(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}
