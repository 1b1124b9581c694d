package server

import (
	"net/http"

	"acquisitions/internal/config"
	"acquisitions/internal/handler"
	"acquisitions/internal/middleware"
	"acquisitions/internal/models"
	"acquisitions/internal/repository"
	"acquisitions/internal/service"
	"acquisitions/internal/shield"
	"acquisitions/internal/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	cfg    *config.Config
	log    *zap.Logger
}

func NewServer(cfg *config.Config, db *sqlx.DB, protector shield.Protector, log *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		cfg:    cfg,
		log:    log,
	}

	s.setupRoutes(db, protector)

	return s
}

func (s *Server) setupRoutes(db *sqlx.DB, protector shield.Protector) {
	codec := token.NewCodec(s.cfg, s.log)

	authRepo := repository.NewAuthRepository(db, s.log)
	authService := service.NewAuthService(authRepo, codec, s.log)
	authHandler := handler.NewAuthHandler(authService, s.cfg, s.log)
	healthHandler := handler.NewHealthHandler()

	s.router.Use(cors.New(corsConfig(s.cfg)))
	s.router.Use(middleware.Shield(protector, codec, s.log))

	s.router.GET("/", healthHandler.Root)
	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/api", healthHandler.API)

	authGroup := s.router.Group("/api/auth")
	authGroup.GET("/sign-in", authHandler.SignInProbe)
	authGroup.POST("/sign-up", authHandler.SignUp)
	authGroup.POST("/sign-in", authHandler.SignIn)
	authGroup.POST("/sign-out", authHandler.SignOut)

	// Authenticated routes
	protected := s.router.Group("/api")
	protected.Use(middleware.RequireAuth(codec, s.log))
	{
		protected.GET("/auth/me", authHandler.Me)

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole(s.log, models.RoleAdmin))
		admin.GET("/stats", func(c *gin.Context) {
			claims, _ := middleware.Identity(c)
			c.JSON(http.StatusOK, gin.H{
				"requested_by": claims.Email,
				"role":         claims.Role,
				"uptime":       healthHandler.Uptime().Seconds(),
			})
		})
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if cfg.CORS.Origin == "" || cfg.CORS.Origin == "*" {
		// Wildcard origins cannot be combined with credentials, so echo the
		// caller's origin instead.
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORS.Origin}
	}
	return corsCfg
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run() {
	addr := ":" + s.cfg.Server.Port
	s.log.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.log.Fatal("Server failed to start", zap.Error(err))
	}
}
