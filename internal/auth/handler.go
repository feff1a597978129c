package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sportsfusion/sportsfusion/internal/telemetry/metrics"
	"github.com/sportsfusion/sportsfusion/internal/telemetry/tracing"
	"github.com/sportsfusion/sportsfusion/internal/users"
	"github.com/sportsfusion/sportsfusion/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type authService interface {
	Login(ctx context.Context, credentials Credentials, createdAt time.Time) (string, *users.User, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type usersStore interface {
	Create(ctx context.Context, user users.User) error
	GetByID(ctx context.Context, id string) (*users.User, error)
}

type Handler struct {
	authService authService
	usersRepo   usersStore
	cookieTTL   time.Duration
	metrics     *metrics.Manager
}

func NewHandler(
	authService authService,
	usersRepo usersStore,
	cookieTTL time.Duration,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		authService: authService,
		usersRepo:   usersRepo,
		cookieTTL:   cookieTTL,
		metrics:     metricsManager,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ID string `json:"id"`
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.register")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var registerReq RegisterRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
			log.Errorf("register, unmarshal json params: %s", err)
			http.Error(w, "register failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("register failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		registerReq = RegisterRequest{
			Name:     r.Form.Get("name"),
			Email:    r.Form.Get("email"),
			Password: r.Form.Get("password"),
		}
	}

	if registerReq.Email == "" {
		http.Error(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if registerReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(registerReq.Password)
	if err != nil {
		log.Errorf("register failed, hash password: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	userID, err := pkg.NewID()
	if err != nil {
		log.Errorf("register failed, generate user id: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	user := users.User{
		ID:           userID,
		Name:         registerReq.Name,
		Email:        registerReq.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := handler.usersRepo.Create(ctx, user); err != nil {
		if errors.Is(err, users.ErrUserExists) {
			http.Error(w, "error, email already registered", http.StatusConflict)
			return
		}
		log.Errorf("register failed for %s: %s", registerReq.Email, err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	if handler.metrics != nil {
		handler.metrics.CounterUsersRegistered.Inc()
	}

	registerRespJson, err := json.Marshal(RegisterResponse{ID: userID})
	if err != nil {
		log.Errorf("register failed, marshal response: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("new user registered: %s", registerReq.Email)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, registerRespJson, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var loginReq Credentials
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		loginReq = Credentials{
			Email:    r.Form.Get("email"),
			Password: r.Form.Get("password"),
		}
	}

	if loginReq.Email == "" {
		http.Error(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	token, user, err := handler.authService.Login(ctx, loginReq, time.Now())
	if err != nil {
		if errors.Is(err, ErrWrongCredentials) {
			log.Tracef("failed login attempt for user: %s", loginReq.Email)
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login failed for %s: %s", loginReq.Email, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(handler.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if handler.metrics != nil {
		handler.metrics.CounterLogins.Inc()
	}

	log.Tracef("new login success: %s", user.ID)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"token":"%s","userId":"%s"}`, token, user.ID))
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		http.Error(w, "error, no session", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.authService.Logout(ctx, cookie.Value)
	if err != nil && !errors.Is(err, ErrNoSession) {
		log.Errorf("logout failed: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	// expire the cookie regardless of the token state
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Tracef("logout, session removed: %t", loggedOut)
	pkg.WriteTextResponseOK(w, "logged-out")
}

type MeResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image,omitempty"`
}

// HandleMe returns the profile of the user owning the session cookie.
func (handler *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.me")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	userID := UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	user, err := handler.usersRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			// the session points at a user that no longer exists
			log.Warnf("session user %s not found", userID)
			http.Error(w, "no user", http.StatusUnauthorized)
			return
		}
		log.Errorf("get session user %s: %s", userID, err)
		http.Error(w, "get user failed", http.StatusInternalServerError)
		return
	}

	meJson, err := json.Marshal(MeResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Image: user.Image,
	})
	if err != nil {
		log.Errorf("failed to marshal me response: %s", err)
		http.Error(w, "get user failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, meJson, http.StatusOK)
}
