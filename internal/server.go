package internal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/sportsfusion/sportsfusion/internal/auth"
	"github.com/sportsfusion/sportsfusion/internal/config"
	"github.com/sportsfusion/sportsfusion/internal/dashboard"
	"github.com/sportsfusion/sportsfusion/internal/db"
	"github.com/sportsfusion/sportsfusion/internal/middleware"
	"github.com/sportsfusion/sportsfusion/internal/sports"
	"github.com/sportsfusion/sportsfusion/internal/telemetry/metrics"
	"github.com/sportsfusion/sportsfusion/internal/training"
	"github.com/sportsfusion/sportsfusion/internal/users"
	"github.com/sportsfusion/sportsfusion/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config        *config.Config
	dbPool        *pgxpool.Pool
	sportsCatalog *sports.Catalog

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service
	usersRepo    *users.Repo
	trainingRepo *training.Repo

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config         *config.Config
	RedisPassword  string
	VersionInfo    string
	TracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	usersRepo := users.NewRepo(dbPool)
	authService := auth.NewAuthService(usersRepo, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	s := &Server{
		config:       params.Config,
		dbPool:       dbPool,
		versionInfo:  params.VersionInfo,
		usersRepo:    usersRepo,
		trainingRepo: training.NewRepo(dbPool),

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}

	sportsCsvFile, err := os.Open(params.Config.SportsCsvPath)
	if err != nil {
		return nil, fmt.Errorf("open sports file: %w", err)
	}
	defer func() {
		if err := sportsCsvFile.Close(); err != nil {
			log.Warnf("close sports csv file: %s", err)
		}
	}()

	s.sportsCatalog, err = sports.NewCatalog(csv.NewReader(sportsCsvFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sports catalog: %s", err)
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	}).Methods("GET", "OPTIONS").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	authHandler := auth.NewHandler(
		s.authService,
		s.usersRepo,
		auth.DefaultTTL,
		s.metricsManager,
	)
	r.HandleFunc("/register", authHandler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	// registered before the /a subrouter so reading the profile skips the login rate limit
	r.HandleFunc("/a/me", authHandler.HandleMe).Methods("GET", "OPTIONS").Name("me")

	loginSubrouter := r.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/login", authHandler.HandleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/logout", authHandler.HandleLogout).
		Methods("POST", "OPTIONS").Name("logout")

	// rate limit the /login and /logout endpoints to prevent abuse
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	loginSubrouter.Use(middleware.RateLimit(
		reqRateLimiter,
		"login",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	))

	sportsHandler := sports.NewHandler(s.sportsCatalog)
	r.HandleFunc("/sports", sportsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sports")

	trainingHandler := training.NewHandler(s.trainingRepo, s.sportsCatalog, s.metricsManager)
	r.HandleFunc("/dashboard/activities/session", trainingHandler.HandleStartSession).
		Methods("POST", "OPTIONS").Name("start-session")
	r.HandleFunc("/dashboard/activities/session/{id}", trainingHandler.HandleDeleteSession).
		Methods("DELETE", "OPTIONS").Name("delete-session")
	r.HandleFunc("/dashboard/activities/session/{id}/progress", trainingHandler.HandleProgress).
		Methods("GET", "OPTIONS").Name("session-progress")
	r.HandleFunc("/dashboard/activities/strength", trainingHandler.HandleAddStrength).
		Methods("POST", "OPTIONS").Name("add-strength")
	r.HandleFunc("/dashboard/activities/duration", trainingHandler.HandleAddDuration).
		Methods("POST", "OPTIONS").Name("add-duration")
	r.HandleFunc("/dashboard/activities/distance", trainingHandler.HandleAddDistance).
		Methods("POST", "OPTIONS").Name("add-distance")

	dashboardHandler := dashboard.NewHandler(
		dashboard.NewService(s.trainingRepo),
	)
	r.HandleFunc("/dashboard/sessions", dashboardHandler.HandleListSessions).
		Methods("GET", "OPTIONS").Name("list-sessions")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
