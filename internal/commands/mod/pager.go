package mod

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/voidswithin/cipher/pkg/discord"
	"github.com/voidswithin/cipher/pkg/warnings"
)

// pageControls renders the Previous/Next row for the current view state
func pageControls(view *warnings.PageView, prevID, nextID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.SecondaryButton,
					CustomID: prevID,
					Disabled: !view.CanPrev(),
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.SecondaryButton,
					CustomID: nextID,
					Disabled: !view.CanNext(),
				},
			},
		},
	}
}

// presentPages replies with a paginated embed view scoped to the invoking
// user. Single-page results are sent without controls. Navigation extends
// the idle window; once it lapses the controls are removed and the view
// stays on its last page.
func presentPages(ctx *discord.CommandContext, embeds []*discordgo.MessageEmbed) error {
	if len(embeds) == 1 {
		return ctx.ReplyEmbed(embeds[0])
	}

	owner := ctx.User().ID
	view := warnings.NewPageView(owner, len(embeds))
	prevID := discord.NewComponentID()
	nextID := discord.NewComponentID()
	registry := ctx.Client.Components

	currentEmbed := func() []*discordgo.MessageEmbed {
		return []*discordgo.MessageEmbed{embeds[view.Page()]}
	}

	// arm (re-)registers both controls with a fresh idle deadline. The
	// expiry callback lives on the Previous entry only so it fires once.
	var arm func()
	arm = func() {
		deadline := time.Now().Add(warnings.PageIdleTimeout)

		registry.Register(prevID, &discord.ComponentHandler{
			OwnerID:   owner,
			ExpiresAt: deadline,
			OnClick: func(c *discord.ComponentContext) {
				if view.Prev() {
					arm()
				}
				_ = c.UpdateMessage(currentEmbed(), pageControls(view, prevID, nextID))
			},
			OnExpire: func() {
				registry.Unregister(nextID)
				view.Expire()
				_ = ctx.EditReplyComponents(currentEmbed(), []discordgo.MessageComponent{})
			},
		})
		registry.Register(nextID, &discord.ComponentHandler{
			OwnerID:   owner,
			ExpiresAt: deadline,
			OnClick: func(c *discord.ComponentContext) {
				if view.Next() {
					arm()
				}
				_ = c.UpdateMessage(currentEmbed(), pageControls(view, prevID, nextID))
			},
		})
	}
	arm()

	return ctx.ReplyComponents("", currentEmbed(), pageControls(view, prevID, nextID))
}
