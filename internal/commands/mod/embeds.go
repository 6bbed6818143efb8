// Package mod provides the moderation commands: template management,
// warning issuance and history views.
package mod

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/voidswithin/cipher/pkg/models"
	"github.com/voidswithin/cipher/pkg/warnings"
)

// Brand constants shared by every moderation embed
const (
	brandName    = "Voids Within"
	brandIconURL = "https://i.imgur.com/HwsaWNp.png"
	brandFooter  = "Warning system powered by Cipher"

	colorBrand        = 0x6e00f5
	colorAcknowledged = 0x00f56a
	colorQuestioned   = 0xf58f00
	colorHistory      = 0xffa500
	colorCatalog      = 0x0099ff
)

// embedFieldValueMax is Discord's limit for a single field value
const embedFieldValueMax = 1024

func brandFooterBlock() *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text:    brandFooter,
		IconURL: brandIconURL,
	}
}

func brandAuthor(name string) *discordgo.MessageEmbedAuthor {
	return &discordgo.MessageEmbedAuthor{
		Name:    name,
		IconURL: brandIconURL,
	}
}

// truncate bounds text to max runes for embed field values, appending an
// ellipsis when cut. Counting runes keeps a multi-byte character from
// being split into invalid UTF-8.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}

// tag renders a user the way Discord displays them
func tag(u *discordgo.User) string {
	if u == nil {
		return "unknown"
	}
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// actorTag renders a workflow actor's display handle
func actorTag(a warnings.Actor) string {
	if a.Discriminator == "" || a.Discriminator == "0" {
		return a.Username
	}
	return a.Username + "#" + a.Discriminator
}

func actorFromUser(u *discordgo.User) warnings.Actor {
	return warnings.Actor{
		ID:            u.ID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		Avatar:        u.AvatarURL(""),
	}
}

// templateFields renders the template name/description pair used across
// moderator notices and DM embeds.
func templateFields(t models.WarningTemplate) []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		{Name: "Warning Name", Value: truncate(t.Title, embedFieldValueMax)},
		{Name: "Warning Description", Value: truncate(t.Description, embedFieldValueMax)},
	}
}

// issuedEmbed is the success notice shown to the moderator after issuance
func issuedEmbed(moderator, target warnings.Actor, template models.WarningTemplate, notes *string, severity models.Severity) *discordgo.MessageEmbed {
	fields := templateFields(template)

	notesValue := "No additional notes provided"
	if notes != nil && *notes != "" {
		notesValue = truncate(*notes, embedFieldValueMax)
	}
	fields = append(fields, &discordgo.MessageEmbedField{Name: "Additional Notes", Value: notesValue})

	if severity != models.SeverityUnset {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Severity", Value: severity.String()})
	}

	return &discordgo.MessageEmbed{
		Author:    brandAuthor(actorTag(moderator)),
		Title:     fmt.Sprintf("%s has issued a warning to %s", actorTag(moderator), actorTag(target)),
		Fields:    fields,
		Color:     colorBrand,
		Footer:    brandFooterBlock(),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// warningDMEmbed is the direct notice delivered to the warned member
func warningDMEmbed(template models.WarningTemplate, notes *string, severity models.Severity) *discordgo.MessageEmbed {
	fields := templateFields(template)

	if severity != models.SeverityUnset {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Severity", Value: severity.String()})
	}
	if notes != nil && *notes != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Additional Notes", Value: truncate(*notes, embedFieldValueMax)})
	}

	return &discordgo.MessageEmbed{
		Author: brandAuthor(brandName),
		Title:  "You have Received a Warning",
		Description: "A member of the Moderation Team within the Voids Within Discord Server has issued you a warning " +
			"due to your conduct within our server. Please review the information regarding this warning below. " +
			"Further disregard of our community's rules will result in a removal from our Discord Server.",
		Fields:    fields,
		Color:     colorBrand,
		Footer:    brandFooterBlock(),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
