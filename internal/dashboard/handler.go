package dashboard

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/sportsfusion/sportsfusion/internal/auth"
	"github.com/sportsfusion/sportsfusion/internal/telemetry/tracing"
	"github.com/sportsfusion/sportsfusion/pkg"
)

type ListSessionsResponse struct {
	Sessions []SessionWithActivities `json:"sessions"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.listSessions")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	sessions, err := handler.service.GetAllSessions(ctx, userID)
	if err != nil {
		log.Errorf("failed to get sessions for user %s: %s", userID, err)
		http.Error(w, "failed to get sessions", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListSessionsResponse{
		Sessions: sessions,
	})
	if err != nil {
		log.Errorf("failed to marshal sessions response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
