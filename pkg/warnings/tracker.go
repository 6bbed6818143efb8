package warnings

import "github.com/voidswithin/cipher/pkg/models"

// TrackerState enumerates the delivery/response states
type TrackerState int

const (
	TrackerDelivering TrackerState = iota
	TrackerDelivered
	TrackerAcknowledged
	TrackerQuestioned
	TrackerExpired
	TrackerUndeliverable
)

// String returns the state name
func (s TrackerState) String() string {
	switch s {
	case TrackerDelivering:
		return "Delivering"
	case TrackerDelivered:
		return "Delivered"
	case TrackerAcknowledged:
		return "Acknowledged"
	case TrackerQuestioned:
		return "Questioned"
	case TrackerExpired:
		return "Expired"
	case TrackerUndeliverable:
		return "Undeliverable"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the tracker has finished
func (s TrackerState) Terminal() bool {
	return s != TrackerDelivering && s != TrackerDelivered
}

// TrackerEvent is an input to the delivery/response machine
type TrackerEvent interface{ isTrackerEvent() }

// DeliverySucceeded: the direct message reached the target
type DeliverySucceeded struct{}

// DeliveryFailed: the direct message could not be sent (e.g. DMs closed)
type DeliveryFailed struct{ Err error }

// Acknowledged: the target clicked Acknowledge
type Acknowledged struct{ ActorID string }

// Questioned: the target clicked the question action
type Questioned struct{ ActorID string }

// ResponseDeadline: the response window elapsed with no click
type ResponseDeadline struct{}

func (DeliverySucceeded) isTrackerEvent() {}
func (DeliveryFailed) isTrackerEvent()    {}
func (Acknowledged) isTrackerEvent()      {}
func (Questioned) isTrackerEvent()        {}
func (ResponseDeadline) isTrackerEvent()  {}

// TrackerEffect is the side effect a tracker transition demands
type TrackerEffect int

const (
	TrackerEffectNone TrackerEffect = iota
	// TrackerEffectAwaitResponse: arm the response window and the two actions
	TrackerEffectAwaitResponse
	// TrackerEffectLogUndeliverable: log and stop; issuance stays successful
	TrackerEffectLogUndeliverable
	// TrackerEffectRejectActor: private notice to a non-target clicker
	TrackerEffectRejectActor
	// TrackerEffectNotifyAcknowledged: disable actions, notify moderators
	TrackerEffectNotifyAcknowledged
	// TrackerEffectNotifyQuestioned: disable actions, ask moderators to follow up
	TrackerEffectNotifyQuestioned
	// TrackerEffectDisableControls: disable actions silently (expiry)
	TrackerEffectDisableControls
)

// ModeratorNotifier posts structured notices to the moderator channel.
// Implementations are best-effort: a failure is logged by the caller and
// never rolls back the state transition.
type ModeratorNotifier interface {
	PostAcknowledged(t *Tracker) error
	PostQuestioned(t *Tracker) error
}

// Tracker follows one delivered warning notice: the DM to the target and
// the single Acknowledge/Question response it may collect within the
// response window.
type Tracker struct {
	State     TrackerState
	WarningID int64
	Target    Actor
	Issuer    Actor
	Template  models.WarningTemplate
	Notes     *string
	Severity  models.Severity
}

// NewTracker starts a tracker in the Delivering state
func NewTracker(warningID int64, target, issuer Actor, template models.WarningTemplate, notes *string, severity models.Severity) *Tracker {
	return &Tracker{
		State:     TrackerDelivering,
		WarningID: warningID,
		Target:    target,
		Issuer:    issuer,
		Template:  template,
		Notes:     notes,
		Severity:  severity,
	}
}

// Apply advances the tracker by one event. Exactly one response click is
// honored; everything after the first terminal transition is ignored.
func (t *Tracker) Apply(ev TrackerEvent) TrackerEffect {
	if t.State.Terminal() {
		return TrackerEffectNone
	}

	switch e := ev.(type) {
	case DeliverySucceeded:
		if t.State != TrackerDelivering {
			return TrackerEffectNone
		}
		t.State = TrackerDelivered
		return TrackerEffectAwaitResponse

	case DeliveryFailed:
		if t.State != TrackerDelivering {
			return TrackerEffectNone
		}
		t.State = TrackerUndeliverable
		return TrackerEffectLogUndeliverable

	case Acknowledged:
		if t.State != TrackerDelivered {
			return TrackerEffectNone
		}
		if e.ActorID != t.Target.ID {
			return TrackerEffectRejectActor
		}
		t.State = TrackerAcknowledged
		return TrackerEffectNotifyAcknowledged

	case Questioned:
		if t.State != TrackerDelivered {
			return TrackerEffectNone
		}
		if e.ActorID != t.Target.ID {
			return TrackerEffectRejectActor
		}
		t.State = TrackerQuestioned
		return TrackerEffectNotifyQuestioned

	case ResponseDeadline:
		if t.State != TrackerDelivered {
			return TrackerEffectNone
		}
		t.State = TrackerExpired
		return TrackerEffectDisableControls
	}

	return TrackerEffectNone
}
