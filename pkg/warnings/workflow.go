// Package warnings implements the warning lifecycle: the interactive
// issuance workflow, the delivery/response tracker and the paginated
// views. The state machines here are plain transition functions with no
// Discord dependency; the command layer owns the wiring.
package warnings

import (
	"context"
	"time"

	"github.com/voidswithin/cipher/pkg/models"
)

// Step deadlines. Selection and confirmation each get their own window;
// the delivered DM waits much longer for the target to react.
const (
	SelectTimeout  = 60 * time.Second
	ConfirmTimeout = 60 * time.Second
	ResponseWindow = 24 * time.Hour
)

// Actor is an external identity driving a workflow step, carrying the
// display attributes the user directory mirrors.
type Actor struct {
	ID            string
	Username      string
	Discriminator string
	Avatar        string
}

// TemplateStore is the read side of the template catalog
type TemplateStore interface {
	ListTemplates(ctx context.Context) ([]models.WarningTemplate, error)
	GetTemplate(ctx context.Context, id int64) (*models.WarningTemplate, error)
}

// UserDirectory upserts identity mirrors before warnings reference them
type UserDirectory interface {
	UpsertUser(ctx context.Context, id, username, discriminator, avatar string) error
}

// WarningRecorder appends issued warnings
type WarningRecorder interface {
	RecordWarning(ctx context.Context, userID string, templateID int64, issuedBy string, notes *string, severity models.Severity) (int64, error)
}

// WorkflowState enumerates the issuance states
type WorkflowState int

const (
	StateCollectingInput WorkflowState = iota
	StateSelectingTemplate
	StateAwaitingConfirmation
	StateIssued
	StateCancelled
	StateTimedOut
)

// String returns the state name
func (s WorkflowState) String() string {
	switch s {
	case StateCollectingInput:
		return "CollectingInput"
	case StateSelectingTemplate:
		return "SelectingTemplate"
	case StateAwaitingConfirmation:
		return "AwaitingConfirmation"
	case StateIssued:
		return "Issued"
	case StateCancelled:
		return "Cancelled"
	case StateTimedOut:
		return "TimedOut"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further events can advance the workflow
func (s WorkflowState) Terminal() bool {
	return s == StateIssued || s == StateCancelled || s == StateTimedOut
}

// Event is an external input driving the workflow
type Event interface{ isEvent() }

// TemplateSelected is a menu selection by some actor
type TemplateSelected struct {
	ActorID    string
	TemplateID int64
}

// Confirmed is a click on the Confirm action
type Confirmed struct{ ActorID string }

// CancelRequested is a click on the Cancel action
type CancelRequested struct{ ActorID string }

// DeadlineElapsed fires when a step's wait expires. Step records which
// state the deadline was armed for; a deadline that outlives its step
// (the moderator acted right at the wire) is stale and must not touch
// the state the workflow has since moved to.
type DeadlineElapsed struct{ Step WorkflowState }

func (TemplateSelected) isEvent() {}
func (Confirmed) isEvent()        {}
func (CancelRequested) isEvent()  {}
func (DeadlineElapsed) isEvent()  {}

// Effect tells the caller which side effect a transition demands.
// Transitions never perform I/O themselves.
type Effect int

const (
	// EffectNone: nothing to do (stale or irrelevant event)
	EffectNone Effect = iota
	// EffectRejectActor: privately tell a foreign actor this step is not theirs
	EffectRejectActor
	// EffectReportInvalidSelection: selection named an unknown template; report
	// to the moderator and keep the menu interactive
	EffectReportInvalidSelection
	// EffectPromptConfirmation: show the confirmation summary with Confirm/Cancel
	EffectPromptConfirmation
	// EffectPersist: upsert subject and issuer, then record the warning
	EffectPersist
	// EffectAbort: clear controls and report the cancellation
	EffectAbort
	// EffectExpire: clear controls silently
	EffectExpire
)

// Workflow is one run of the guided issuance state machine, tied to a
// single command invocation. Instances are single-threaded; concurrent
// invocations get independent instances.
type Workflow struct {
	State     WorkflowState
	Moderator Actor
	Target    Actor
	Comments  string
	Severity  models.Severity
	Template  *models.WarningTemplate

	catalog map[int64]models.WarningTemplate
}

// NewGuidedWorkflow starts a workflow at SelectingTemplate with the
// catalog the moderator is choosing from.
func NewGuidedWorkflow(moderator, target Actor, comments string, severity models.Severity, catalog []models.WarningTemplate) *Workflow {
	indexed := make(map[int64]models.WarningTemplate, len(catalog))
	for _, t := range catalog {
		indexed[t.ID] = t
	}
	return &Workflow{
		State:     StateSelectingTemplate,
		Moderator: moderator,
		Target:    target,
		Comments:  comments,
		Severity:  severity,
		catalog:   indexed,
	}
}

// Apply advances the workflow by one event and returns the side effect
// the caller must perform. Events from actors other than the invoking
// moderator never advance the state.
func (w *Workflow) Apply(ev Event) Effect {
	if w.State.Terminal() {
		return EffectNone
	}

	switch e := ev.(type) {
	case TemplateSelected:
		if w.State != StateSelectingTemplate {
			return EffectNone
		}
		if e.ActorID != w.Moderator.ID {
			return EffectRejectActor
		}
		template, ok := w.catalog[e.TemplateID]
		if !ok {
			return EffectReportInvalidSelection
		}
		w.Template = &template
		w.State = StateAwaitingConfirmation
		return EffectPromptConfirmation

	case Confirmed:
		if w.State != StateAwaitingConfirmation {
			return EffectNone
		}
		if e.ActorID != w.Moderator.ID {
			return EffectRejectActor
		}
		w.State = StateIssued
		return EffectPersist

	case CancelRequested:
		if w.State != StateAwaitingConfirmation {
			return EffectNone
		}
		if e.ActorID != w.Moderator.ID {
			return EffectRejectActor
		}
		w.State = StateCancelled
		return EffectAbort

	case DeadlineElapsed:
		if e.Step != w.State {
			return EffectNone
		}
		w.State = StateTimedOut
		return EffectExpire
	}

	return EffectNone
}

// Issuer performs the persistence sequence of an issuance: subject
// upsert, issuer upsert, then the warning insert. The ordering satisfies
// the directory's foreign-key invariant; calls are sequential within one
// workflow instance.
type Issuer struct {
	Users    UserDirectory
	Warnings WarningRecorder
}

// Issue persists one warning and returns its id. A failed upsert aborts
// before the insert; an orphan user row from a failed insert is harmless
// and is not rolled back.
func (i *Issuer) Issue(ctx context.Context, target, moderator Actor, templateID int64, notes *string, severity models.Severity) (int64, error) {
	if err := i.Users.UpsertUser(ctx, target.ID, target.Username, target.Discriminator, target.Avatar); err != nil {
		return 0, err
	}
	if err := i.Users.UpsertUser(ctx, moderator.ID, moderator.Username, moderator.Discriminator, moderator.Avatar); err != nil {
		return 0, err
	}
	return i.Warnings.RecordWarning(ctx, target.ID, templateID, moderator.ID, notes, severity)
}
