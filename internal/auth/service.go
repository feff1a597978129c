package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sportsfusion/sportsfusion/internal/users"
	"github.com/sportsfusion/sportsfusion/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth

const (
	DefaultTTL        = 24 * 7 * time.Hour
	SessionCookieName = "sportsfusion_session"

	sessionKeyPrefix = "sportsfusion-session||"
	tokensSetKey     = "sportsfusion-sessions"
)

var (
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrNoSession        = errors.New("no session")
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type usersGetter interface {
	GetByEmail(ctx context.Context, email string) (*users.User, error)
}

type Service struct {
	usersRepo   usersGetter
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	usersRepo usersGetter,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		usersRepo:      usersRepo,
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login verifies the credentials against the stored user and, on success,
// issues a new session token bound to that user.
func (as *Service) Login(ctx context.Context, credentials Credentials, createdAt time.Time) (string, *users.User, error) {
	user, err := as.usersRepo.GetByEmail(ctx, credentials.Email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return "", nil, ErrWrongCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(credentials.Password, user.PasswordHash) {
		return "", nil, ErrWrongCredentials
	}

	token, err := as.RandStringFunc(35)
	if err != nil {
		return "", nil, err
	}

	sessionKey := sessionKeyPrefix + token
	sessionValue := fmt.Sprintf("%s||%d", user.ID, createdAt.Unix())
	cmdSet := as.redisClient.Set(ctx, sessionKey, sessionValue, 0)
	if err := cmdSet.Err(); err != nil {
		return "", nil, err
	}

	// add token to list of sessions
	cmdSAdd := as.redisClient.SAdd(ctx, tokensSetKey, token)
	if err := cmdSAdd.Err(); err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := as.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, ErrNoSession
		}
		return false, err
	}

	cmdDel := as.redisClient.Del(ctx, sessionKey)
	if err := cmdDel.Err(); err != nil {
		return false, err
	}

	// remove token from the list of sessions
	cmdSRem := as.redisClient.SRem(ctx, tokensSetKey, token)
	if err := cmdSRem.Err(); err != nil {
		return false, err
	}

	return cmd.Val() != "", nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Warnln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Warnf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		sessionKey := sessionKeyPrefix + token
		cmd := as.redisClient.Get(ctx, sessionKey)
		if err := cmd.Err(); err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		_, createdAt, err := parseSessionValue(cmd.Val())
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		if time.Since(createdAt) > as.ttl {
			log.Warnf("=>\twill clean the session with token: %s", token)
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		sessionKey := sessionKeyPrefix + token
		cmdDel := as.redisClient.Del(ctx, sessionKey)
		if err := cmdDel.Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}

		// remove token from the list of sessions
		cmdSRem := as.redisClient.SRem(ctx, tokensSetKey, token)
		if err := cmdSRem.Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
	}
}

func parseSessionValue(value string) (userID string, createdAt time.Time, err error) {
	parts := strings.Split(value, "||")
	if len(parts) != 2 {
		return "", time.Time{}, fmt.Errorf("malformed session value [%s]", value)
	}

	createdAtUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("malformed session timestamp: %w", err)
	}

	return parts[0], time.Unix(createdAtUnix, 0), nil
}
