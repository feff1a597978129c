package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/sportsfusion/sportsfusion/internal/auth"
	"github.com/sportsfusion/sportsfusion/internal/telemetry/tracing"
	"github.com/sportsfusion/sportsfusion/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type sessionChecker interface {
	GetUserID(ctx context.Context, token string) (string, error)
}

type AuthMiddlewareHandler struct {
	sessionChecker sessionChecker
	// paths under these prefixes require an authenticated user
	protectedPathsPrefixes []string
	// pages an authenticated user gets bounced away from, back to the dashboard
	guestOnlyPaths map[string]bool
}

func NewAuthMiddlewareHandler(sessionChecker sessionChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		sessionChecker: sessionChecker,
		protectedPathsPrefixes: []string{
			"/dashboard",
		},
		guestOnlyPaths: map[string]bool{
			"/login":    true,
			"/register": true,
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsProtected(path string) bool {
	for _, prefix := range h.protectedPathsPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// AuthCheck resolves the session cookie and routes accordingly:
// unauthenticated requests to protected paths are redirected to the login
// page carrying the originally requested path as callbackUrl, and
// authenticated requests to the login/register pages are redirected to the
// dashboard. Authentication failures are never surfaced as error payloads.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			var userID string
			if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
				userID, err = h.sessionChecker.GetUserID(ctx, cookie.Value)
				if err != nil && !errors.Is(err, auth.ErrNoSession) {
					reqIp, _ := pkg.ReadUserIP(r)
					log.Errorf("[failed session check] => %s [%s]: %s", r.URL.Path, reqIp, err)
				}
			}

			if h.pathIsProtected(r.URL.Path) {
				if userID == "" {
					loginURL := "/login?callbackUrl=" + url.QueryEscape(r.URL.Path)
					span.SetStatus(codes.Ok, "redirect-login")
					http.Redirect(w, r, loginURL, http.StatusFound)
					return
				}

				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r.WithContext(auth.SetUserIDToContext(ctx, userID)))
				return
			}

			if h.guestOnlyPaths[r.URL.Path] && userID != "" {
				span.SetStatus(codes.Ok, "redirect-dashboard")
				http.Redirect(w, r, "/dashboard", http.StatusFound)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			if userID != "" {
				r = r.WithContext(auth.SetUserIDToContext(ctx, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}
