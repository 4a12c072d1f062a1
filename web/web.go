// Package web provides the HTTP server of the bookshelf API: routing,
// static image serving and lifecycle management.
package web

import (
	"context"
	"io"
	"net"
	"net/http"

	"bookshelf/config"
	"bookshelf/logger"
	"bookshelf/util/common"
	"bookshelf/web/controller"
	"bookshelf/web/middleware"
	"bookshelf/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Server is the bookshelf API web server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	auth  *controller.AuthController
	books *controller.BookController

	tokenService *service.TokenService

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes gin, registers middleware, static assets and
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	s.tokenService = service.NewTokenService()

	engine.Static("/images", config.GetImagesFolderPath())

	api := engine.Group("/api")
	{
		api.GET("/healthz", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		s.auth = controller.NewAuthController(api.Group("/auth"))
		s.books = controller.NewBookController(api.Group("/books"), middleware.BearerAuth(s.tokenService))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), config.GetPort())
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	return nil
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop() error {
	s.cancel()
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
