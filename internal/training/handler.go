package training

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/sportsfusion/sportsfusion/internal/auth"
	"github.com/sportsfusion/sportsfusion/internal/sports"
	"github.com/sportsfusion/sportsfusion/internal/telemetry/metrics"
	"github.com/sportsfusion/sportsfusion/internal/telemetry/tracing"
	"github.com/sportsfusion/sportsfusion/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=training_mocks_test.go -package=training_test

type trainingRepo interface {
	CreateSessionAndActivities(ctx context.Context, userID string, sports []SelectedSport) (*Session, []Activity, error)
	AddDetail(ctx context.Context, detail Detail) (string, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	ListActivities(ctx context.Context, sessionID string) ([]Activity, error)
	GetDetail(ctx context.Context, activityID string, mode Mode) (*Detail, error)
	DeleteSession(ctx context.Context, userID, sessionID string) error
}

type sportsCatalog interface {
	Get(id string) (*sports.Sport, bool)
}

type StartSessionRequest struct {
	Sports []SelectedSport `json:"sports"`
}

type StartSessionResponse struct {
	SessionID  string     `json:"sessionId"`
	Activities []Activity `json:"activities"`
}

type AddDetailResponse struct {
	DetailID   string `json:"detailId"`
	ActivityID string `json:"activityId"`
}

type DeleteSessionResponse struct {
	DeletedID string `json:"deletedId"`
}

type strengthRequest struct {
	ActivityID  string  `json:"activityId"`
	Series      int     `json:"series"`
	Repetitions int     `json:"repetitions"`
	Weight      float64 `json:"weight"`
}

type durationRequest struct {
	ActivityID      string `json:"activityId"`
	DurationSeconds int    `json:"duration"`
}

type distanceRequest struct {
	ActivityID  string  `json:"activityId"`
	DistanceKm  float64 `json:"distance"`
	TimeSeconds int     `json:"time"`
	Pace        int     `json:"ritmo"`
}

type Handler struct {
	repo    trainingRepo
	catalog sportsCatalog
	wizard  *Wizard
	metrics *metrics.Manager
}

func NewHandler(repo trainingRepo, catalog sportsCatalog, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		catalog: catalog,
		wizard:  NewWizard(repo),
		metrics: metricsManager,
	}
}

// HandleStartSession creates one session plus one activity per selected
// sport. Duplicate sport selections collapse to one activity.
func (handler *Handler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.startSession")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("start session, unmarshal json params: %s", err)
		http.Error(w, "start session failed", http.StatusBadRequest)
		return
	}

	if len(req.Sports) == 0 {
		http.Error(w, "error, no sports selected", http.StatusBadRequest)
		return
	}
	for _, sport := range req.Sports {
		if sport.ID == "" || sport.Name == "" {
			http.Error(w, "error, sport id or name empty", http.StatusBadRequest)
			return
		}
		if !Mode(sport.Category.Title).Valid() {
			http.Error(w, "error, unknown sport category", http.StatusBadRequest)
			return
		}
		catalogSport, found := handler.catalog.Get(sport.ID)
		if !found {
			log.Tracef("start session, sport [%s] not in catalog", sport.ID)
			http.Error(w, "error, unknown sport", http.StatusBadRequest)
			return
		}
		if catalogSport.Category.ID != sport.Category.ID {
			http.Error(w, "error, sport category mismatch", http.StatusBadRequest)
			return
		}
	}

	uniqueSports := DedupeSelectedSports(req.Sports)

	session, activities, err := handler.repo.CreateSessionAndActivities(ctx, userID, uniqueSports)
	if err != nil {
		log.Errorf("failed to create session for user %s: %s", userID, err)
		http.Error(w, "error, failed to create session", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSessionsCreated.Inc()

	respJson, err := json.Marshal(StartSessionResponse{
		SessionID:  session.ID,
		Activities: activities,
	})
	if err != nil {
		log.Errorf("failed to marshal start session response: %s", err)
		http.Error(w, "error, failed to create session", http.StatusInternalServerError)
		return
	}

	log.Debugf("session %s created with %d activities", session.ID, len(activities))
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleAddStrength(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.addStrength")
	defer span.End()

	var req strengthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add strength detail, unmarshal json params: %s", err)
		http.Error(w, "add strength detail failed", http.StatusBadRequest)
		return
	}

	if req.ActivityID == "" {
		http.Error(w, "error, activity id empty", http.StatusBadRequest)
		return
	}
	if req.Series <= 0 || req.Repetitions <= 0 || req.Weight < 0 {
		http.Error(w, "error, invalid strength values", http.StatusBadRequest)
		return
	}

	handler.addDetail(ctx, w, Detail{
		ActivityID: req.ActivityID,
		Mode:       ModeStrength,
		Strength: &StrengthDetail{
			Series:      req.Series,
			Repetitions: req.Repetitions,
			Weight:      req.Weight,
		},
	})
}

func (handler *Handler) HandleAddDuration(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.addDuration")
	defer span.End()

	var req durationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add duration detail, unmarshal json params: %s", err)
		http.Error(w, "add duration detail failed", http.StatusBadRequest)
		return
	}

	if req.ActivityID == "" {
		http.Error(w, "error, activity id empty", http.StatusBadRequest)
		return
	}
	if req.DurationSeconds <= 0 {
		http.Error(w, "error, invalid duration", http.StatusBadRequest)
		return
	}

	handler.addDetail(ctx, w, Detail{
		ActivityID: req.ActivityID,
		Mode:       ModeDuration,
		Duration: &DurationDetail{
			DurationSeconds: req.DurationSeconds,
		},
	})
}

func (handler *Handler) HandleAddDistance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.addDistance")
	defer span.End()

	var req distanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add distance detail, unmarshal json params: %s", err)
		http.Error(w, "add distance detail failed", http.StatusBadRequest)
		return
	}

	if req.ActivityID == "" {
		http.Error(w, "error, activity id empty", http.StatusBadRequest)
		return
	}
	if req.DistanceKm <= 0 || req.TimeSeconds <= 0 || req.Pace < 0 {
		http.Error(w, "error, invalid distance values", http.StatusBadRequest)
		return
	}

	handler.addDetail(ctx, w, Detail{
		ActivityID: req.ActivityID,
		Mode:       ModeDistance,
		Distance: &DistanceDetail{
			DistanceKm:  req.DistanceKm,
			TimeSeconds: req.TimeSeconds,
			Pace:        req.Pace,
		},
	})
}

func (handler *Handler) addDetail(ctx context.Context, w http.ResponseWriter, detail Detail) {
	detailID, err := handler.repo.AddDetail(ctx, detail)
	if err != nil {
		log.Errorf("failed to add %s detail for activity %s: %s", detail.Mode, detail.ActivityID, err)
		http.Error(w, "error, failed to add activity detail", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterActivitiesRegistered.WithLabelValues(string(detail.Mode)).Inc()

	respJson, err := json.Marshal(AddDetailResponse{
		DetailID:   detailID,
		ActivityID: detail.ActivityID,
	})
	if err != nil {
		log.Errorf("failed to marshal add detail response: %s", err)
		http.Error(w, "error, failed to add activity detail", http.StatusInternalServerError)
		return
	}

	log.Debugf("activity %s: %s detail %s added", detail.ActivityID, detail.Mode, detailID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.deleteSession")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	sessionID := vars["id"]
	if sessionID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.DeleteSession(ctx, userID, sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			log.Debugf("session %s not found for user %s", sessionID, userID)
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete session %s: %s", sessionID, err)
		http.Error(w, "session not deleted", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSessionsDeleted.Inc()

	deleteRespJson, err := json.Marshal(DeleteSessionResponse{
		DeletedID: sessionID,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.progress")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	sessionID := vars["id"]
	if sessionID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	progress, err := handler.wizard.SessionProgress(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			log.Debugf("session %s not found for user %s", sessionID, userID)
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get progress for session %s: %s", sessionID, err)
		http.Error(w, "failed to get session progress", http.StatusInternalServerError)
		return
	}

	progressJson, err := json.Marshal(progress)
	if err != nil {
		log.Errorf("failed to marshal progress response: %s", err)
		http.Error(w, "failed to marshal progress response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, progressJson, http.StatusOK)
}
