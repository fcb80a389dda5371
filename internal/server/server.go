package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mediadesk/internal/catalog"
	"mediadesk/internal/config"
	"mediadesk/internal/fileops"
	"mediadesk/internal/logging"
	"mediadesk/internal/mediainfo"
	"mediadesk/internal/mediaops"
	"mediadesk/internal/sandbox"
	"mediadesk/internal/toolexec"
)

const shutdownTimeout = 10 * time.Second

// Server owns the HTTP surface and the components behind it.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	box    *sandbox.Sandbox
	lister *catalog.Lister
	prober *mediainfo.Prober
	ops    *mediaops.Service
	files  *fileops.Executor

	engine   *gin.Engine
	http     *http.Server
	listener net.Listener
}

// New wires every component from cfg. The config is treated as immutable.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	runner := toolexec.New(logger)
	box := sandbox.New(cfg.Paths.Roots)
	lister := catalog.New(cfg.Media.VideoExtensions, cfg.Media.SubtitleExtensions)
	prober := mediainfo.NewProber(runner, cfg.FFprobeBinary(), logger)

	s := &Server{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "server"),
		box:    box,
		lister: lister,
		prober: prober,
		ops:    mediaops.New(cfg, box, lister, prober, runner, logger),
		files:  fileops.New(box, logger),
	}
	s.engine = s.routes()
	s.http = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the router for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), requestLogger(s.logger), gin.CustomRecovery(s.handlePanic))

	r.GET("/health", s.handleHealth)
	r.GET("/browse", s.handleBrowse)
	r.GET("/probe", s.handleProbe)
	r.POST("/extract-subs", s.handleExtract)
	r.POST("/burn-subs", s.handleBurn)
	r.POST("/transcode-hevc", s.handleHEVC)
	r.POST("/transcode-mp4", s.handleMP4)
	r.POST("/file-op", s.handleFileOp)
	r.POST("/translate-subs", s.handleTranslate)
	r.NoRoute(s.handleNotFound)
	return r
}

// Start binds the listener and serves in the background until ctx is done
// or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.ListenAddress())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("http server listening",
		logging.String("address", listener.Addr().String()),
		logging.Strings("roots", s.box.Roots()),
	)
	if len(s.box.Roots()) == 0 {
		s.logger.Warn("no media roots configured; every sandboxed request will fail",
			logging.String("hint", "set paths.roots or MEDIA_ROOTS"),
		)
	}
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down, waiting briefly for in-flight requests.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("http server shutdown incomplete", logging.Error(err))
	}
}

// Run starts the server and blocks until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	s.logger.Info("http server stopped")
	return nil
}
