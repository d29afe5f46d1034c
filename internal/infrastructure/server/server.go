// Package server wires configuration, storage, domain services and the
// HTTP surface into a runnable desktop backend.
package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/carlhannes/hannes-os/internal/api/http"
	"github.com/carlhannes/hannes-os/internal/api/middleware"
	"github.com/carlhannes/hannes-os/internal/api/ws"
	"github.com/carlhannes/hannes-os/internal/domain/opener"
	"github.com/carlhannes/hannes-os/internal/domain/registry"
	"github.com/carlhannes/hannes-os/internal/domain/vfs"
	"github.com/carlhannes/hannes-os/internal/domain/window"
	"github.com/carlhannes/hannes-os/internal/infrastructure/config"
	"github.com/carlhannes/hannes-os/internal/infrastructure/logging"
	"github.com/carlhannes/hannes-os/internal/infrastructure/monitoring"
	"github.com/carlhannes/hannes-os/internal/infrastructure/tracing"
	"github.com/carlhannes/hannes-os/internal/storage"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	router  *gin.Engine
	store   storage.Store
	fs      *vfs.Service
	windows *window.Manager
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a server from configuration. The file system is
// initialized before the server is returned, so a returned server is
// ready to accept requests.
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing desktop server",
		zap.String("port", cfg.Server.Port),
		zap.String("store_driver", cfg.Store.Driver),
	)

	// Own registry per server instance so restarts and tests never
	// trip duplicate registration
	registryProm := prometheus.NewRegistry()
	metrics := monitoring.NewMetricsWithRegistry(registryProm)

	store, err := openStore(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open entity store: %w", err)
	}

	appRegistry := registry.NewRegistry()

	fs := vfs.NewService(store, logger).
		WithCatalog(appRegistry).
		WithMetrics(metrics)
	if err := fs.Initialize(context.Background()); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize file system: %w", err)
	}

	windows := window.NewManager(cfg.Desktop.ViewportWidth, cfg.Desktop.ViewportHeight).
		WithMetrics(metrics)

	fileOpener := opener.New(fs, appRegistry, windows, logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.Middleware(tracing.New(logger.Logger)))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	handlers := apihttp.NewHandlers(fs, windows, appRegistry, fileOpener, logger)
	wsHandler := ws.NewHandler(fs, windows, logger, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registryProm, promhttp.HandlerOpts{})))

	// File system
	router.POST("/fs/init", handlers.InitFS)
	router.GET("/fs/entity/:id", handlers.GetEntity)
	router.GET("/fs/path/*path", handlers.GetEntityByPath)
	router.GET("/fs/list/:id", handlers.ListDirectory)
	router.GET("/fs/entities/:id/path", handlers.GetEntityPath)
	router.POST("/fs/directories", handlers.CreateDirectory)
	router.POST("/fs/files", handlers.CreateFile)
	router.POST("/fs/links", handlers.CreateLink)
	router.PUT("/fs/links/:id", handlers.UpdateLink)
	router.PUT("/fs/files/:id/content", handlers.UpdateFileContent)
	router.PUT("/fs/entities/:id/name", handlers.RenameEntity)
	router.PUT("/fs/entities/:id/parent", handlers.MoveEntity)
	router.PATCH("/fs/entities/:id/metadata", handlers.UpdateEntityMetadata)
	router.DELETE("/fs/entities/:id", handlers.DeleteEntity)

	// Windows
	router.GET("/windows", handlers.ListWindows)
	router.POST("/windows", handlers.OpenWindow)
	router.GET("/windows/:id", handlers.GetWindow)
	router.DELETE("/windows/:id", handlers.CloseWindow)
	router.POST("/windows/:id/activate", handlers.ActivateWindow)
	router.POST("/windows/:id/minimize", handlers.MinimizeWindow)
	router.POST("/windows/:id/restore", handlers.RestoreWindow)
	router.POST("/windows/:id/maximize", handlers.ToggleMaximize)
	router.PUT("/windows/:id/position", handlers.UpdateWindowPosition)
	router.PUT("/windows/:id/size", handlers.UpdateWindowSize)
	router.POST("/windows/:id/animation/clear", handlers.ClearMinimizeAnimation)
	router.PUT("/desktop/viewport", handlers.UpdateViewport)

	// Applications
	router.GET("/apps", handlers.ListApps)
	router.GET("/apps/:id", handlers.GetApp)
	router.POST("/apps/:id/launch", handlers.LaunchApp)
	router.POST("/open", handlers.OpenEntity)

	// WebSocket change stream
	router.GET("/stream", wsHandler.HandleConnection)

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		store:   store,
		fs:      fs,
		windows: windows,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Router exposes the gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if err := s.store.Close(); err != nil {
		s.logger.Error("Failed to close entity store", zap.Error(err))
		return fmt.Errorf("failed to close entity store: %w", err)
	}

	s.logger.Sync()
	return nil
}

func openStore(cfg config.StoreConfig) (storage.Store, error) {
	switch cfg.Driver {
	case "memory":
		return storage.NewMemory(), nil
	case "sqlite":
		return storage.NewSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
