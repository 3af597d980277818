package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/seabattle/internal/config"
	mc "github.com/saeidalz13/seabattle/models/connection"
)

const (
	defaultPort     = "8000"
	shutdownTimeout = time.Second * 5

	WatchPath = "/battleship/watch"
)

type Server struct {
	port           string
	stage          string
	sessionManager *mc.BattleshipSessionManager
	spectator      *Spectator
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) (*Server, error) {
	server := Server{stage: config.StageDev}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			return nil, err
		}
	}
	if server.port == "" {
		server.port = defaultPort
	}
	if server.sessionManager == nil {
		server.sessionManager = mc.NewBattleshipSessionManager()
	}
	server.spectator = NewSpectator(server.sessionManager)

	return &server, nil
}

func WithPort(port string) Option {
	return func(s *Server) error {
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != config.StageProd && stage != config.StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

func WithSessionManager(sm *mc.BattleshipSessionManager) Option {
	return func(s *Server) error {
		s.sessionManager = sm
		return nil
	}
}

func (s *Server) Spectator() *Spectator {
	return s.spectator
}

func (s *Server) upgrader() websocket.Upgrader {
	upgrader := websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// spectators only send tiny signals
		ReadBufferSize:  512,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	if s.stage == config.StageProd {
		upgrader.CheckOrigin = sameOrigin
	}
	return upgrader
}

func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET "+WatchPath, NewRequestProcessor(s.sessionManager, s.spectator, s.upgrader()))
	return mux
}

// Run serves the spectator feed until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	go s.sessionManager.ManageCommunication(ctx)
	go s.sessionManager.CleanupPeriodically(ctx)

	httpServer := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Second * 5,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", s.port).Str("path", WatchPath).Msg("spectator feed listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
