package warnings

import (
	"testing"

	pkgerrors "github.com/pkg/errors"

	"github.com/voidswithin/cipher/pkg/models"
)

func newTestTracker() *Tracker {
	return NewTracker(7, testTarget, testModerator,
		models.WarningTemplate{ID: 1, Title: "Spam", Description: "Repeated unsolicited messages"},
		nil, models.SeverityMedium)
}

func TestTrackerAcknowledgePath(t *testing.T) {
	tr := newTestTracker()

	if tr.State != TrackerDelivering {
		t.Fatalf("initial state = %v, want Delivering", tr.State)
	}

	if effect := tr.Apply(DeliverySucceeded{}); effect != TrackerEffectAwaitResponse {
		t.Fatalf("delivery effect = %v, want TrackerEffectAwaitResponse", effect)
	}

	effect := tr.Apply(Acknowledged{ActorID: testTarget.ID})
	if effect != TrackerEffectNotifyAcknowledged {
		t.Fatalf("acknowledge effect = %v, want TrackerEffectNotifyAcknowledged", effect)
	}
	if tr.State != TrackerAcknowledged {
		t.Fatalf("state = %v, want Acknowledged", tr.State)
	}

	// Exactly one response: a second click is a no-op
	if effect := tr.Apply(Questioned{ActorID: testTarget.ID}); effect != TrackerEffectNone {
		t.Errorf("second click effect = %v, want TrackerEffectNone", effect)
	}
}

func TestTrackerQuestionPath(t *testing.T) {
	tr := newTestTracker()
	tr.Apply(DeliverySucceeded{})

	effect := tr.Apply(Questioned{ActorID: testTarget.ID})
	if effect != TrackerEffectNotifyQuestioned {
		t.Fatalf("question effect = %v, want TrackerEffectNotifyQuestioned", effect)
	}
	if tr.State != TrackerQuestioned {
		t.Fatalf("state = %v, want Questioned", tr.State)
	}
}

func TestTrackerUndeliverable(t *testing.T) {
	tr := newTestTracker()

	effect := tr.Apply(DeliveryFailed{Err: pkgerrors.New("cannot send messages to this user")})
	if effect != TrackerEffectLogUndeliverable {
		t.Fatalf("effect = %v, want TrackerEffectLogUndeliverable", effect)
	}
	if tr.State != TrackerUndeliverable {
		t.Fatalf("state = %v, want Undeliverable", tr.State)
	}

	// Terminal: late events are ignored
	if effect := tr.Apply(Acknowledged{ActorID: testTarget.ID}); effect != TrackerEffectNone {
		t.Errorf("click after undeliverable = %v, want TrackerEffectNone", effect)
	}
}

func TestTrackerRejectsForeignActor(t *testing.T) {
	tr := newTestTracker()
	tr.Apply(DeliverySucceeded{})

	effect := tr.Apply(Acknowledged{ActorID: "999"})
	if effect != TrackerEffectRejectActor {
		t.Fatalf("effect = %v, want TrackerEffectRejectActor", effect)
	}
	if tr.State != TrackerDelivered {
		t.Errorf("state = %v, a foreign click must not advance the tracker", tr.State)
	}

	// The real target can still respond afterwards
	if effect := tr.Apply(Acknowledged{ActorID: testTarget.ID}); effect != TrackerEffectNotifyAcknowledged {
		t.Errorf("target click after foreign click = %v, want TrackerEffectNotifyAcknowledged", effect)
	}
}

func TestTrackerSilentExpiry(t *testing.T) {
	tr := newTestTracker()
	tr.Apply(DeliverySucceeded{})

	effect := tr.Apply(ResponseDeadline{})
	if effect != TrackerEffectDisableControls {
		t.Fatalf("expiry effect = %v, want TrackerEffectDisableControls (no moderator notice)", effect)
	}
	if tr.State != TrackerExpired {
		t.Fatalf("state = %v, want Expired", tr.State)
	}

	if effect := tr.Apply(Acknowledged{ActorID: testTarget.ID}); effect != TrackerEffectNone {
		t.Errorf("click after expiry = %v, want TrackerEffectNone", effect)
	}
}

func TestTrackerDeadlineBeforeDeliveryIsIgnored(t *testing.T) {
	tr := newTestTracker()

	if effect := tr.Apply(ResponseDeadline{}); effect != TrackerEffectNone {
		t.Errorf("deadline while delivering = %v, want TrackerEffectNone", effect)
	}
	if tr.State != TrackerDelivering {
		t.Errorf("state = %v, want Delivering", tr.State)
	}
}
