package mod

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	cerrors "github.com/voidswithin/cipher/pkg/errors"
	"github.com/voidswithin/cipher/pkg/warnings"
)

// channelNotifier posts response notices to the configured moderator
// channel. It implements warnings.ModeratorNotifier; callers treat every
// failure as log-and-continue.
type channelNotifier struct {
	session   *discordgo.Session
	channelID string
}

func newChannelNotifier(session *discordgo.Session, channelID string) *channelNotifier {
	return &channelNotifier{session: session, channelID: channelID}
}

func (n *channelNotifier) post(embed *discordgo.MessageEmbed) error {
	if n.channelID == "" {
		return cerrors.NewValidation("moderatorChannel", "not configured")
	}
	_, err := n.session.ChannelMessageSendEmbed(n.channelID, embed)
	if err != nil {
		return cerrors.NewDelivery(n.channelID, err)
	}
	return nil
}

// responseFields renders the template details plus optional notes
func responseFields(t *warnings.Tracker) []*discordgo.MessageEmbedField {
	fields := templateFields(t.Template)
	if t.Notes != nil && *t.Notes != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Additional Notes",
			Value: truncate(*t.Notes, embedFieldValueMax),
		})
	}
	return fields
}

// PostAcknowledged reports that the member saw and accepted their warning
func (n *channelNotifier) PostAcknowledged(t *warnings.Tracker) error {
	target := actorTag(t.Target)
	return n.post(&discordgo.MessageEmbed{
		Author: brandAuthor(brandName),
		Title:  fmt.Sprintf("%s has acknowledged their warning.", target),
		Description: fmt.Sprintf("%s has seen their warning that was issued and has acknowledged it. "+
			"No further action is required by a Moderator.", target),
		Fields:    responseFields(t),
		Color:     colorAcknowledged,
		Footer:    brandFooterBlock(),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// PostQuestioned asks a moderator to follow up with the member
func (n *channelNotifier) PostQuestioned(t *warnings.Tracker) error {
	target := actorTag(t.Target)
	fields := append(responseFields(t), &discordgo.MessageEmbedField{
		Name:  "Issued By",
		Value: actorTag(t.Issuer),
	})
	return n.post(&discordgo.MessageEmbed{
		Author: brandAuthor(brandName),
		Title:  fmt.Sprintf("%s has a question about their Warning.", target),
		Description: fmt.Sprintf("%s has seen their warning that was issued and is requesting a Moderator "+
			"reach out to them to explain the warning further.", target),
		Fields:    fields,
		Color:     colorQuestioned,
		Footer:    brandFooterBlock(),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
