package discord

import (
	"testing"
	"time"
)

func newTestRegistry() *ComponentRegistry {
	// No sweep loop: tests drive sweepExpired directly
	return &ComponentRegistry{
		handlers: make(map[string]*ComponentHandler),
		stop:     make(chan struct{}),
	}
}

// TestDecideRunForOwner verifies the owner's click is dispatched
func TestDecideRunForOwner(t *testing.T) {
	r := newTestRegistry()
	now := time.Now()

	r.Register("btn-1", &ComponentHandler{
		OwnerID:   "moderator",
		ExpiresAt: now.Add(time.Minute),
	})

	h, d := r.decide("btn-1", "moderator", now)
	if d != dispatchRun {
		t.Fatalf("decide = %v, want dispatchRun", d)
	}
	if h == nil {
		t.Fatal("handler is nil")
	}
}

// TestDecideRejectsForeignActor verifies clicks from other users are rejected
func TestDecideRejectsForeignActor(t *testing.T) {
	r := newTestRegistry()
	now := time.Now()

	r.Register("btn-1", &ComponentHandler{
		OwnerID:   "moderator",
		ExpiresAt: now.Add(time.Minute),
	})

	if _, d := r.decide("btn-1", "bystander", now); d != dispatchReject {
		t.Fatalf("decide = %v, want dispatchReject", d)
	}
}

// TestDecideAllowsAnyoneWithoutOwner verifies unowned components accept any actor
func TestDecideAllowsAnyoneWithoutOwner(t *testing.T) {
	r := newTestRegistry()
	now := time.Now()

	r.Register("btn-1", &ComponentHandler{
		ExpiresAt: now.Add(time.Minute),
	})

	if _, d := r.decide("btn-1", "anyone", now); d != dispatchRun {
		t.Fatalf("decide = %v, want dispatchRun", d)
	}
}

// TestDecideMissForUnknownID verifies unknown custom-IDs fall through
func TestDecideMissForUnknownID(t *testing.T) {
	r := newTestRegistry()

	if _, d := r.decide("nope", "anyone", time.Now()); d != dispatchMiss {
		t.Fatalf("decide = %v, want dispatchMiss", d)
	}
}

// TestDecideMissAfterDeadline verifies a click racing the sweep is dropped
func TestDecideMissAfterDeadline(t *testing.T) {
	r := newTestRegistry()
	now := time.Now()

	r.Register("btn-1", &ComponentHandler{
		OwnerID:   "moderator",
		ExpiresAt: now.Add(time.Minute),
	})

	if _, d := r.decide("btn-1", "moderator", now.Add(2*time.Minute)); d != dispatchMiss {
		t.Fatalf("decide = %v, want dispatchMiss", d)
	}
}

// TestSweepExpiredRunsCallbacks verifies expiry callbacks fire once and entries are removed
func TestSweepExpiredRunsCallbacks(t *testing.T) {
	r := newTestRegistry()
	now := time.Now()

	expired := 0
	r.Register("stale", &ComponentHandler{
		ExpiresAt: now.Add(-time.Second),
		OnExpire:  func() { expired++ },
	})
	r.Register("fresh", &ComponentHandler{
		ExpiresAt: now.Add(time.Minute),
		OnExpire:  func() { t.Error("fresh entry must not expire") },
	})

	for _, cb := range r.sweepExpired(now) {
		cb()
	}

	if expired != 1 {
		t.Errorf("expiry callbacks run = %d, want 1", expired)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	// Second sweep must not fire the callback again
	for _, cb := range r.sweepExpired(now) {
		cb()
	}
	if expired != 1 {
		t.Errorf("expiry callbacks run after second sweep = %d, want 1", expired)
	}
}

// TestUnregisterSkipsExpiry verifies explicit removal bypasses OnExpire
func TestUnregisterSkipsExpiry(t *testing.T) {
	r := newTestRegistry()
	now := time.Now()

	r.Register("btn-1", &ComponentHandler{
		ExpiresAt: now.Add(-time.Second),
		OnExpire:  func() { t.Error("OnExpire must not run for unregistered entries") },
	})
	r.Register("btn-2", &ComponentHandler{
		ExpiresAt: now.Add(-time.Second),
		OnExpire:  func() { t.Error("OnExpire must not run for unregistered entries") },
	})

	r.Unregister("btn-1", "btn-2")

	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	if cbs := r.sweepExpired(now); len(cbs) != 0 {
		t.Errorf("sweepExpired returned %d callbacks, want 0", len(cbs))
	}
}

// TestNewComponentIDUnique verifies minted custom-IDs do not collide
func TestNewComponentIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewComponentID()
		if id == "" {
			t.Fatal("NewComponentID returned empty string")
		}
		if seen[id] {
			t.Fatalf("duplicate component ID %q", id)
		}
		seen[id] = true
	}
}
