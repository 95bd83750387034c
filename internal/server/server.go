package server

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "inboxpilot/docs" // swagger spec registration
	"inboxpilot/internal/auth"
	"inboxpilot/internal/cache"
	"inboxpilot/internal/config"
	"inboxpilot/internal/database"
	"inboxpilot/internal/email"
	"inboxpilot/internal/handlers"
	"inboxpilot/internal/llm"
	"inboxpilot/internal/notify"
	"inboxpilot/internal/rules"
)

// patternCacheTTL bounds how long a compiled rule pattern is reused before
// recompilation picks up edits
const patternCacheTTL = 10 * time.Minute

// Server represents the application server
type Server struct {
	echo   *echo.Echo
	db     *sqlx.DB
	config *config.Config
	logger zerolog.Logger
	env    *handlers.Env
	auth   *auth.Manager
}

// New creates a new server instance
func New(cfg *config.Config, db *sqlx.DB, logger zerolog.Logger) *Server {
	users := database.NewUserStore(db)
	ruleStore := database.NewRuleStore(db)
	planned := database.NewPlannedStore(db)
	usage := database.NewUsageStore(db, logger)
	notifications := database.NewNotificationStore(db)

	var mailer notify.Mailer
	if cfg.SendGridAPIKey != "" {
		mailer = email.NewService(cfg.SendGridAPIKey, cfg.NotifyFromEmail)
	}
	notifier := notify.NewService(notifications, mailer, logger)

	gateway := llm.NewClient(cfg, logger, usage, notifier)

	pipeline := rules.NewPipeline(
		rules.NewMatcher(cache.New(patternCacheTTL), cfg.MaxPatternLength, logger),
		rules.NewResolver(gateway, logger),
		rules.NewExecutor(logger),
		planned,
		logger,
	)

	env := &handlers.Env{
		Config:        cfg,
		Logger:        logger,
		Users:         users,
		Rules:         ruleStore,
		Planned:       planned,
		Usage:         usage,
		Notifications: notifications,
		Pipeline:      pipeline,
		Executor:      rules.NewExecutor(logger),
		NewMailer:     handlers.GmailMailerFactory(cfg, logger),
	}

	return &Server{
		config: cfg,
		db:     db,
		logger: logger,
		env:    env,
		auth:   auth.NewManager(cfg),
	}
}

// zerologMiddleware creates a zerolog-based logging middleware for Echo
func (s *Server) zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			s.logger.Info().
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return err
		}
	}
}

// Initialize sets up the Echo framework with middleware and routes
func (s *Server) Initialize() {
	s.echo = echo.New()

	s.echo.Use(s.zerologMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())

	s.echo.HideBanner = true

	s.setupRoutes()
}

// setupRoutes configures all the application routes
func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Health endpoints (keep at root level for monitoring)
	s.echo.GET("/healthz", handlers.HealthHandler(s.config.Version))
	s.echo.GET("/healthz/db", handlers.DBHealthHandler(s.db))

	api.GET("/", handlers.RootHandler(s.config.Version))
	api.POST("/login", handlers.LoginHandler(s.auth))
	api.POST("/webhook", handlers.WebhookHandler(s.env))

	// Per-user resources behind admin authentication
	users := api.Group("/users/:userID", auth.Middleware(s.auth))
	users.GET("/rules", handlers.ListRulesHandler(s.env))
	users.POST("/rules", handlers.CreateRuleHandler(s.env))
	users.DELETE("/rules/:ruleID", handlers.DeleteRuleHandler(s.env))
	users.GET("/planned", handlers.ListPlannedHandler(s.env))
	users.POST("/planned/:planID/execute", handlers.ExecutePlanHandler(s.env))
	users.POST("/planned/:planID/reject", handlers.RejectPlanHandler(s.env))
	users.GET("/usage", handlers.UsageHandler(s.env))
	users.GET("/notifications", handlers.NotificationsHandler(s.env))
	users.POST("/notifications/seen", handlers.MarkNotificationsSeenHandler(s.env))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Port).Msg("Server starting")
	return s.echo.Start(":" + s.config.Port)
}
