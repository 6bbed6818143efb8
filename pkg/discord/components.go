// Package discord: component registry for routing button and select-menu
// interactions.
//
// Every interactive message registers its component custom-IDs here with
// an owning actor and a deadline. Clicks are dispatched by custom-ID;
// clicks from anyone but the owner get a private notice and are dropped.
// A single sweep loop expires stale entries instead of one timer per
// message.
package discord

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

const sweepInterval = time.Second

// NewComponentID mints a unique component custom-ID
func NewComponentID() string {
	return uuid.NewString()
}

// ComponentContext wraps a component interaction for a click handler
type ComponentContext struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

// Actor returns the user who clicked
func (ctx *ComponentContext) Actor() *discordgo.User {
	if ctx.Interaction.Member != nil {
		return ctx.Interaction.Member.User
	}
	return ctx.Interaction.User
}

// Values returns the selected values of a select-menu interaction
func (ctx *ComponentContext) Values() []string {
	return ctx.Interaction.MessageComponentData().Values
}

// RespondEphemeral sends a private reply to the clicking actor
func (ctx *ComponentContext) RespondEphemeral(content string) error {
	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// UpdateMessage replaces the clicked message's embeds and components
func (ctx *ComponentContext) UpdateMessage(embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: components,
		},
	})
}

// ComponentHandler is a pending click handler for one custom-ID
type ComponentHandler struct {
	// OwnerID restricts clicks to one actor; empty allows anyone
	OwnerID string
	// ExpiresAt is when the sweep loop retires this entry
	ExpiresAt time.Time
	// OnClick runs for an authorized click
	OnClick func(ctx *ComponentContext)
	// OnExpire runs once when the entry is swept; may be nil
	OnExpire func()
	// RejectMessage overrides the default notice shown to foreign actors
	RejectMessage string
}

const defaultRejectMessage = "This button is not for you."

type dispatch int

const (
	dispatchMiss dispatch = iota
	dispatchReject
	dispatchRun
)

// ComponentRegistry routes component interactions by custom-ID
type ComponentRegistry struct {
	mu       sync.Mutex
	handlers map[string]*ComponentHandler
	stop     chan struct{}
	stopOnce sync.Once
}

// NewComponentRegistry creates a registry and starts its sweep loop
func NewComponentRegistry() *ComponentRegistry {
	r := &ComponentRegistry{
		handlers: make(map[string]*ComponentHandler),
		stop:     make(chan struct{}),
	}
	go r.sweepLoop()
	return r
}

// Register binds a handler to a component custom-ID
func (r *ComponentRegistry) Register(customID string, h *ComponentHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[customID] = h
}

// Unregister removes handlers without running their expiry callbacks
func (r *ComponentRegistry) Unregister(customIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range customIDs {
		delete(r.handlers, id)
	}
}

// Len returns the number of pending handlers
func (r *ComponentRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers)
}

// Stop stops the sweep loop
func (r *ComponentRegistry) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// decide resolves a click into run/reject/miss without performing I/O
func (r *ComponentRegistry) decide(customID, actorID string, now time.Time) (*ComponentHandler, dispatch) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.handlers[customID]
	if !ok || now.After(h.ExpiresAt) {
		// Expired entries are retired by the sweep loop; a click racing
		// the sweep is treated as if the controls were already gone.
		return nil, dispatchMiss
	}
	if h.OwnerID != "" && actorID != h.OwnerID {
		return h, dispatchReject
	}
	return h, dispatchRun
}

// Handle dispatches a component interaction. It returns false when the
// custom-ID is unknown so the caller can fall through to other handling.
func (r *ComponentRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	ctx := &ComponentContext{Session: s, Interaction: i}
	actor := ctx.Actor()
	if actor == nil {
		return false
	}

	h, d := r.decide(i.MessageComponentData().CustomID, actor.ID, time.Now())
	switch d {
	case dispatchReject:
		msg := h.RejectMessage
		if msg == "" {
			msg = defaultRejectMessage
		}
		_ = ctx.RespondEphemeral(msg)
		return true
	case dispatchRun:
		h.OnClick(ctx)
		return true
	}
	return false
}

// sweepExpired removes entries past their deadline and returns their
// expiry callbacks to be run outside the lock.
func (r *ComponentRegistry) sweepExpired(now time.Time) []func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var callbacks []func()
	for id, h := range r.handlers {
		if now.After(h.ExpiresAt) {
			if h.OnExpire != nil {
				callbacks = append(callbacks, h.OnExpire)
			}
			delete(r.handlers, id)
		}
	}
	return callbacks
}

func (r *ComponentRegistry) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, expire := range r.sweepExpired(time.Now()) {
				expire()
			}
		case <-r.stop:
			return
		}
	}
}
