package warnings

import (
	"context"
	"testing"

	"github.com/voidswithin/cipher/pkg/models"
)

var (
	testModerator = Actor{ID: "100", Username: "mod", Discriminator: "0001"}
	testTarget    = Actor{ID: "200", Username: "member", Discriminator: "0002"}
	testCatalog   = []models.WarningTemplate{
		{ID: 1, Title: "Spam", Description: "Repeated unsolicited messages"},
		{ID: 2, Title: "Harassment", Description: "Targeted abusive behavior"},
	}
)

func newTestWorkflow() *Workflow {
	return NewGuidedWorkflow(testModerator, testTarget, "spamming", models.SeverityMedium, testCatalog)
}

func TestGuidedIssuanceHappyPath(t *testing.T) {
	w := newTestWorkflow()

	if w.State != StateSelectingTemplate {
		t.Fatalf("initial state = %v, want SelectingTemplate", w.State)
	}

	effect := w.Apply(TemplateSelected{ActorID: testModerator.ID, TemplateID: 1})
	if effect != EffectPromptConfirmation {
		t.Fatalf("selection effect = %v, want EffectPromptConfirmation", effect)
	}
	if w.State != StateAwaitingConfirmation {
		t.Fatalf("state = %v, want AwaitingConfirmation", w.State)
	}
	if w.Template == nil || w.Template.ID != 1 {
		t.Fatalf("Template = %+v, want id 1", w.Template)
	}

	effect = w.Apply(Confirmed{ActorID: testModerator.ID})
	if effect != EffectPersist {
		t.Fatalf("confirm effect = %v, want EffectPersist", effect)
	}
	if w.State != StateIssued {
		t.Fatalf("state = %v, want Issued", w.State)
	}
}

func TestUnauthorizedSelectionIsRejected(t *testing.T) {
	w := newTestWorkflow()

	effect := w.Apply(TemplateSelected{ActorID: "999", TemplateID: 1})
	if effect != EffectRejectActor {
		t.Fatalf("effect = %v, want EffectRejectActor", effect)
	}
	if w.State != StateSelectingTemplate {
		t.Errorf("state = %v, a foreign actor must not advance the workflow", w.State)
	}
	if w.Template != nil {
		t.Error("Template must stay unset after a rejected selection")
	}
}

func TestInvalidSelectionIsRecoverable(t *testing.T) {
	w := newTestWorkflow()

	effect := w.Apply(TemplateSelected{ActorID: testModerator.ID, TemplateID: 42})
	if effect != EffectReportInvalidSelection {
		t.Fatalf("effect = %v, want EffectReportInvalidSelection", effect)
	}
	if w.State != StateSelectingTemplate {
		t.Fatalf("state = %v, invalid selection must stay recoverable", w.State)
	}

	// The menu is still live: a valid selection still goes through
	effect = w.Apply(TemplateSelected{ActorID: testModerator.ID, TemplateID: 2})
	if effect != EffectPromptConfirmation {
		t.Errorf("effect after recovery = %v, want EffectPromptConfirmation", effect)
	}
}

func TestCancellation(t *testing.T) {
	w := newTestWorkflow()
	w.Apply(TemplateSelected{ActorID: testModerator.ID, TemplateID: 1})

	effect := w.Apply(CancelRequested{ActorID: testModerator.ID})
	if effect != EffectAbort {
		t.Fatalf("effect = %v, want EffectAbort", effect)
	}
	if w.State != StateCancelled {
		t.Fatalf("state = %v, want Cancelled", w.State)
	}

	// Terminal: nothing advances a cancelled workflow
	if effect := w.Apply(Confirmed{ActorID: testModerator.ID}); effect != EffectNone {
		t.Errorf("confirm after cancel = %v, want EffectNone", effect)
	}
}

func TestSelectionTimeout(t *testing.T) {
	w := newTestWorkflow()

	effect := w.Apply(DeadlineElapsed{Step: StateSelectingTemplate})
	if effect != EffectExpire {
		t.Fatalf("effect = %v, want EffectExpire", effect)
	}
	if w.State != StateTimedOut {
		t.Fatalf("state = %v, want TimedOut", w.State)
	}

	// A late click must not resurrect the workflow
	if effect := w.Apply(TemplateSelected{ActorID: testModerator.ID, TemplateID: 1}); effect != EffectNone {
		t.Errorf("selection after timeout = %v, want EffectNone", effect)
	}
}

func TestConfirmationTimeout(t *testing.T) {
	w := newTestWorkflow()
	w.Apply(TemplateSelected{ActorID: testModerator.ID, TemplateID: 1})

	if effect := w.Apply(DeadlineElapsed{Step: StateAwaitingConfirmation}); effect != EffectExpire {
		t.Fatalf("effect = %v, want EffectExpire", effect)
	}
	if w.State != StateTimedOut {
		t.Fatalf("state = %v, want TimedOut", w.State)
	}
}

func TestStaleDeadlineDoesNotKillNextStep(t *testing.T) {
	w := newTestWorkflow()
	w.Apply(TemplateSelected{ActorID: testModerator.ID, TemplateID: 1})

	// The selection deadline fires after a last-moment pick already
	// advanced the workflow; it belongs to the abandoned step and must
	// leave the confirmation step alone.
	if effect := w.Apply(DeadlineElapsed{Step: StateSelectingTemplate}); effect != EffectNone {
		t.Fatalf("stale deadline = %v, want EffectNone", effect)
	}
	if w.State != StateAwaitingConfirmation {
		t.Fatalf("state = %v, want AwaitingConfirmation", w.State)
	}

	// The deadline armed for the current step still expires it
	if effect := w.Apply(DeadlineElapsed{Step: StateAwaitingConfirmation}); effect != EffectExpire {
		t.Fatalf("effect = %v, want EffectExpire", effect)
	}
	if w.State != StateTimedOut {
		t.Fatalf("state = %v, want TimedOut", w.State)
	}
}

func TestForeignActorCannotConfirmOrCancel(t *testing.T) {
	w := newTestWorkflow()
	w.Apply(TemplateSelected{ActorID: testModerator.ID, TemplateID: 1})

	if effect := w.Apply(Confirmed{ActorID: "999"}); effect != EffectRejectActor {
		t.Errorf("foreign confirm = %v, want EffectRejectActor", effect)
	}
	if effect := w.Apply(CancelRequested{ActorID: "999"}); effect != EffectRejectActor {
		t.Errorf("foreign cancel = %v, want EffectRejectActor", effect)
	}
	if w.State != StateAwaitingConfirmation {
		t.Errorf("state = %v, foreign actors must not advance the workflow", w.State)
	}
}

// fakeDirectory records upsert order for the ordering invariant
type fakeDirectory struct {
	upserts []string
	failOn  string
}

func (f *fakeDirectory) UpsertUser(ctx context.Context, id, username, discriminator, avatar string) error {
	if id == f.failOn {
		return context.DeadlineExceeded
	}
	f.upserts = append(f.upserts, id)
	return nil
}

type fakeRecorder struct {
	recorded bool
	userID   string
	issuedBy string
	severity models.Severity
	notes    *string
}

func (f *fakeRecorder) RecordWarning(ctx context.Context, userID string, templateID int64, issuedBy string, notes *string, severity models.Severity) (int64, error) {
	f.recorded = true
	f.userID = userID
	f.issuedBy = issuedBy
	f.severity = severity
	f.notes = notes
	return 7, nil
}

func TestIssuerUpsertsBeforeRecording(t *testing.T) {
	dir := &fakeDirectory{}
	rec := &fakeRecorder{}
	issuer := &Issuer{Users: dir, Warnings: rec}

	notes := "spamming"
	id, err := issuer.Issue(context.Background(), testTarget, testModerator, 1, &notes, models.SeverityMedium)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if id != 7 {
		t.Errorf("Issue() id = %d, want 7", id)
	}

	if len(dir.upserts) != 2 || dir.upserts[0] != testTarget.ID || dir.upserts[1] != testModerator.ID {
		t.Errorf("upsert order = %v, want subject then issuer", dir.upserts)
	}
	if rec.userID != testTarget.ID || rec.issuedBy != testModerator.ID {
		t.Errorf("recorded warning for %s by %s", rec.userID, rec.issuedBy)
	}
	if rec.severity != models.SeverityMedium || rec.notes == nil || *rec.notes != "spamming" {
		t.Errorf("recorded severity=%v notes=%v", rec.severity, rec.notes)
	}
}

func TestIssuerAbortsOnUpsertFailure(t *testing.T) {
	dir := &fakeDirectory{failOn: testTarget.ID}
	rec := &fakeRecorder{}
	issuer := &Issuer{Users: dir, Warnings: rec}

	_, err := issuer.Issue(context.Background(), testTarget, testModerator, 1, nil, models.SeverityUnset)
	if err == nil {
		t.Fatal("Issue() should fail when the subject upsert fails")
	}
	if rec.recorded {
		t.Error("no warning may be recorded after a failed upsert")
	}
}
