package training

import (
	"context"
	"errors"
	"fmt"

	"github.com/sportsfusion/sportsfusion/internal/telemetry/tracing"
)

// modeOrder is the fixed visiting order of the registration wizard.
var modeOrder = map[Mode]int{
	ModeStrength: 0,
	ModeDuration: 1,
	ModeDistance: 2,
}

// OrderActivities sorts activities into wizard order: strength first, then
// duration, then distance, keeping creation order within each mode. The
// input slice is not modified.
func OrderActivities(activities []Activity) []Activity {
	ordered := make([]Activity, 0, len(activities))
	for rank := 0; rank <= modeOrder[ModeDistance]; rank++ {
		for _, a := range activities {
			if modeOrder[a.Mode] == rank {
				ordered = append(ordered, a)
			}
		}
	}
	return ordered
}

// ActivityProgress is one wizard step: the activity plus whether a detail
// row exists for it.
type ActivityProgress struct {
	Activity
	Registered bool `json:"registered"`
}

// Progress describes how far a registration session has advanced. Next is
// nil when Finished.
type Progress struct {
	SessionID  string             `json:"sessionId"`
	Activities []ActivityProgress `json:"activities"`
	Next       *Activity          `json:"next,omitempty"`
	Finished   bool               `json:"finished"`
}

type wizardRepo interface {
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	ListActivities(ctx context.Context, sessionID string) ([]Activity, error)
	GetDetail(ctx context.Context, activityID string, mode Mode) (*Detail, error)
}

// Wizard derives registration progress from stored detail rows. The detail
// row is the single source of truth for completion; clients may cache their
// own view but the server never trusts it.
type Wizard struct {
	repo wizardRepo
}

func NewWizard(repo wizardRepo) *Wizard {
	return &Wizard{
		repo: repo,
	}
}

// SessionProgress returns the wizard steps of a session in visiting order,
// flagging each as registered or not, plus the next unregistered activity.
// The session must belong to userID.
func (wiz *Wizard) SessionProgress(ctx context.Context, userID, sessionID string) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "wizard.sessionProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := wiz.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}

	activities, err := wiz.repo.ListActivities(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	progress := &Progress{
		SessionID:  sessionID,
		Activities: make([]ActivityProgress, 0, len(activities)),
	}

	for _, activity := range OrderActivities(activities) {
		_, err := wiz.repo.GetDetail(ctx, activity.ID, activity.Mode)
		if err != nil && !errors.Is(err, ErrDetailNotFound) {
			return nil, fmt.Errorf("get detail for activity %s: %w", activity.ID, err)
		}

		registered := err == nil
		progress.Activities = append(progress.Activities, ActivityProgress{
			Activity:   activity,
			Registered: registered,
		})

		if !registered && progress.Next == nil {
			next := activity
			progress.Next = &next
		}
	}

	progress.Finished = progress.Next == nil

	return progress, nil
}
