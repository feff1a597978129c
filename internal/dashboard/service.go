package dashboard

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sportsfusion/sportsfusion/internal/telemetry/tracing"
	"github.com/sportsfusion/sportsfusion/internal/training"
)

//go:generate mockgen -source=$GOFILE -destination=dashboard_mocks_test.go -package=dashboard_test

type trainingRepo interface {
	ListSessions(ctx context.Context, userID string) ([]training.Session, error)
	ListActivities(ctx context.Context, sessionID string) ([]training.Activity, error)
	GetDetail(ctx context.Context, activityID string, mode training.Mode) (*training.Detail, error)
}

// ActivityData is one dashboard row: the activity plus its measurement
// reshaped so Data carries exactly the fields of the activity's mode. Data
// is null while the activity has no detail registered yet.
type ActivityData struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Mode training.Mode `json:"mode"`
	Data any           `json:"data"`
}

type SessionWithActivities struct {
	training.Session
	Activities []ActivityData `json:"activities"`
}

// Service aggregates a user's whole training history for the dashboard.
type Service struct {
	repo trainingRepo
}

func NewService(repo trainingRepo) *Service {
	return &Service{
		repo: repo,
	}
}

// GetAllSessions returns all sessions of a user, newest first, each with its
// activities and their details. Detail rows of one session are fetched
// concurrently; sessions themselves sequentially.
func (s *Service) GetAllSessions(ctx context.Context, userID string) (_ []SessionWithActivities, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.getAllSessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := s.repo.ListSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	result := make([]SessionWithActivities, 0, len(sessions))
	for _, session := range sessions {
		activities, err := s.sessionActivities(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("session %s activities: %w", session.ID, err)
		}
		result = append(result, SessionWithActivities{
			Session:    session,
			Activities: activities,
		})
	}

	return result, nil
}

func (s *Service) sessionActivities(ctx context.Context, sessionID string) ([]ActivityData, error) {
	activities, err := s.repo.ListActivities(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	result := make([]ActivityData, len(activities))
	g, gCtx := errgroup.WithContext(ctx)
	for i, activity := range activities {
		g.Go(func() error {
			detail, err := s.repo.GetDetail(gCtx, activity.ID, activity.Mode)
			if err != nil && !errors.Is(err, training.ErrDetailNotFound) {
				return fmt.Errorf("get detail for activity %s: %w", activity.ID, err)
			}
			result[i] = ActivityData{
				ID:   activity.ID,
				Name: activity.SportName,
				Mode: activity.Mode,
				Data: detailData(detail),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// detailData unwraps the mode-tagged union into the payload of its mode, so
// the serialized data object has exactly that mode's fields.
func detailData(detail *training.Detail) any {
	if detail == nil {
		return nil
	}
	switch detail.Mode {
	case training.ModeStrength:
		return detail.Strength
	case training.ModeDuration:
		return detail.Duration
	case training.ModeDistance:
		return detail.Distance
	}
	return nil
}
