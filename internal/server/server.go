package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"logoserver/internal/config"
	"logoserver/internal/logging"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	logger     logging.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

// New はOSのファイルシステムから配信する Server を作成する
func New(cfg *config.Config, logger logging.Logger) *Server {
	return NewWithFileSystem(cfg, logger, OSFileSystem())
}

// NewWithFileSystem は指定した FileSystem から配信する Server を作成する
func NewWithFileSystem(cfg *config.Config, logger logging.Logger, files FileSystem) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(requestID(), accessLog(logger), recovery(logger))

	s := &Server{
		config: cfg,
		logger: logger,
		engine: engine,
		httpServer: &http.Server{
			Handler: engine,
		},
	}
	s.setupRoutes(NewResponder(cfg.FilePath(), files, logger))

	return s
}

// setupRoutes はHTTPルートを設定する
// それ以外のパスは gin のデフォルトの404になる
func (s *Server) setupRoutes(responder *Responder) {
	s.engine.GET("/", responder.Handle)
	s.engine.HEAD("/", responder.Handle)
}

// Handler はルーティング済みの http.Handler を返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start はサーバーを起動し、ctx がキャンセルされるまでブロックする
func (s *Server) Start(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Listen は設定されたアドレスでリッスンを開始する
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.config.ServerAddress())
	if err != nil {
		return nil, fmt.Errorf("リッスンに失敗: %w", err)
	}

	port := s.config.Server.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	s.logger.Infof("Server running on %s", net.JoinHostPort(s.config.Server.Host, strconv.Itoa(port)))

	return ln, nil
}

// Serve は ln でリクエストを処理する
// ctx がキャンセルされると処理中の接続を待たずに閉じる
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		_ = s.httpServer.Close()
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("サーバーの実行に失敗: %w", err)
	}
}
