package mod

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/voidswithin/cipher/pkg/config"
	"github.com/voidswithin/cipher/pkg/discord"
	"github.com/voidswithin/cipher/pkg/errors"
	"github.com/voidswithin/cipher/pkg/logger"
	"github.com/voidswithin/cipher/pkg/mqtt"
	"github.com/voidswithin/cipher/pkg/warnings"
)

// warningEvent builds the lifecycle payload published for a tracker
func warningEvent(t *warnings.Tracker) mqtt.WarningEvent {
	return mqtt.WarningEvent{
		WarningID: t.WarningID,
		UserID:    t.Target.ID,
		IssuedBy:  t.Issuer.ID,
		Template:  t.Template.Title,
		Severity:  string(t.Severity),
	}
}

// dmButtons renders the Acknowledge/Question row
func dmButtons(ackID, questionID string, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Acknowledge",
					Style:    discordgo.SuccessButton,
					CustomID: ackID,
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    "I don't understand",
					Style:    discordgo.DangerButton,
					CustomID: questionID,
					Disabled: disabled,
				},
			},
		},
	}
}

// deliverWarning sends the direct notice to the warned member and follows
// their response. It is best-effort: the warning is already recorded and
// every failure here is logged, never surfaced to the moderator as an
// issuance failure. Run it on its own goroutine.
func deliverWarning(client *discord.ExtendedClient, tracker *warnings.Tracker) {
	defer errors.RecoverMiddleware()()

	session := client.Session
	registry := client.Components
	notifier := newChannelNotifier(session, config.Get().ModeratorChannel)
	targetTag := actorTag(tracker.Target)

	channel, err := session.UserChannelCreate(tracker.Target.ID)
	if err != nil {
		if tracker.Apply(warnings.DeliveryFailed{Err: err}) == warnings.TrackerEffectLogUndeliverable {
			logger.Warn(fmt.Sprintf("Could not send warning DM to %s: %v", targetTag, err), "Delivery")
		}
		return
	}

	ackID := discord.NewComponentID()
	questionID := discord.NewComponentID()

	msg, err := session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{warningDMEmbed(tracker.Template, tracker.Notes, tracker.Severity)},
		Components: dmButtons(ackID, questionID, false),
	})
	if err != nil {
		if tracker.Apply(warnings.DeliveryFailed{Err: err}) == warnings.TrackerEffectLogUndeliverable {
			logger.Warn(fmt.Sprintf("Could not send warning DM to %s: %v", targetTag, err), "Delivery")
		}
		return
	}

	if tracker.Apply(warnings.DeliverySucceeded{}) != warnings.TrackerEffectAwaitResponse {
		return
	}

	// Component clicks and the expiry sweep arrive on different
	// goroutines; transitions are serialized here.
	var mu sync.Mutex

	disableButtons := func() {
		components := dmButtons(ackID, questionID, true)
		_, err := session.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    channel.ID,
			ID:         msg.ID,
			Components: &components,
		})
		if err != nil {
			logger.Warn("Failed to disable warning DM buttons: "+err.Error(), "Delivery")
		}
	}

	notify := func(post func(*warnings.Tracker) error) {
		if err := post(tracker); err != nil {
			logger.Error("Failed to post moderator notice: "+err.Error(), "Delivery")
		}
	}

	deadline := time.Now().Add(warnings.ResponseWindow)

	registry.Register(ackID, &discord.ComponentHandler{
		OwnerID:   tracker.Target.ID,
		ExpiresAt: deadline,
		OnClick: func(c *discord.ComponentContext) {
			mu.Lock()
			effect := tracker.Apply(warnings.Acknowledged{ActorID: c.Actor().ID})
			mu.Unlock()
			if effect != warnings.TrackerEffectNotifyAcknowledged {
				return
			}
			registry.Unregister(ackID, questionID)
			_ = c.RespondEphemeral("Thank you for acknowledging the warning.")
			disableButtons()
			notify(notifier.PostAcknowledged)
			mqtt.Get().WarningAcknowledged(warningEvent(tracker))
			logger.Info(fmt.Sprintf("Warning %d acknowledged by %s", tracker.WarningID, targetTag), "Delivery")
		},
		// Expiry lives on this entry alone so the window closes exactly once
		OnExpire: func() {
			mu.Lock()
			effect := tracker.Apply(warnings.ResponseDeadline{})
			mu.Unlock()
			if effect != warnings.TrackerEffectDisableControls {
				return
			}
			registry.Unregister(questionID)
			disableButtons()
			mqtt.Get().WarningExpired(warningEvent(tracker))
		},
	})

	registry.Register(questionID, &discord.ComponentHandler{
		OwnerID:   tracker.Target.ID,
		ExpiresAt: deadline,
		OnClick: func(c *discord.ComponentContext) {
			mu.Lock()
			effect := tracker.Apply(warnings.Questioned{ActorID: c.Actor().ID})
			mu.Unlock()
			if effect != warnings.TrackerEffectNotifyQuestioned {
				return
			}
			registry.Unregister(ackID, questionID)
			_ = c.RespondEphemeral("A moderator will reach out to you shortly to explain the warning.")
			disableButtons()
			notify(notifier.PostQuestioned)
			mqtt.Get().WarningQuestioned(warningEvent(tracker))
			logger.Info(fmt.Sprintf("Warning %d questioned by %s", tracker.WarningID, targetTag), "Delivery")
		},
	})
}
