package evaluator

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Evaluator = (*Server)(nil)

// Server accepts one client runtime connection at a time and evaluates code through it.
// A newly connected runtime replaces the previous one.
type Server struct {
	logger   ports.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	current *peer
	pending map[string]chan Response
}

type peer struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	done    chan struct{}
	once    sync.Once
}

// NewServer creates a Server.
func NewServer(logger ports.Logger) *Server {
	return &Server{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The endpoint binds to a development address; any page may connect.
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		pending: make(map[string]chan Response),
	}
}

// Handler returns an http.Handler serving the evaluation endpoint at domain.EvalPath.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(domain.EvalPath, s)
	return mux
}

// Serve listens on addr until ctx is done.
func (s *Server) Serve(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", addr)
	}
	return s.ServeListener(ctx, lis)
}

// ServeListener serves on lis until ctx is done.
func (s *Server) ServeListener(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()
	s.logger.Info("evaluation channel listening on ws://" + lis.Addr().String() + domain.EvalPath)

	select {
	case err := <-errCh:
		return zerr.Wrap(err, "evaluation channel stopped")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	s.disconnect()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, "failed to shut down evaluation channel")
	}
	return nil
}

// Connected reports whether a client runtime is attached.
func (s *Server) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// ServeHTTP upgrades the request and serves the runtime until it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(zerr.Wrap(err, "websocket upgrade failed"))
		return
	}

	p := &peer{conn: conn, done: make(chan struct{})}
	s.mu.Lock()
	previous := s.current
	s.current = p
	s.mu.Unlock()

	if previous != nil {
		s.logger.Warn("client runtime replaced by a new connection")
		previous.close()
	}
	s.logger.Info("client runtime connected from " + r.RemoteAddr)

	go s.keepAlive(p)
	s.readPump(p)
}

// Evaluate sends code to the connected runtime and waits for its answer.
func (s *Server) Evaluate(ctx context.Context, code string) (string, error) {
	s.mu.Lock()
	p := s.current
	if p == nil {
		s.mu.Unlock()
		return "", domain.ErrNoClient
	}
	id := uuid.NewString()
	ch := make(chan Response, 1)
	s.pending[id] = ch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}()

	if err := p.write(Request{ID: id, Code: code}); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConnectionClosed.Error()), "request_id", id)
	}

	select {
	case resp := <-ch:
		if resp.Error != "" {
			return "", zerr.With(zerr.New(resp.Error), "request_id", id)
		}
		return resp.Value, nil
	case <-p.done:
		return "", zerr.With(domain.ErrConnectionClosed, "request_id", id)
	case <-ctx.Done():
		return "", zerr.With(zerr.Wrap(ctx.Err(), "evaluation abandoned"), "request_id", id)
	}
}

func (s *Server) readPump(p *peer) {
	defer func() {
		p.close()
		s.mu.Lock()
		if s.current == p {
			s.current = nil
		}
		s.mu.Unlock()
	}()

	p.conn.SetReadLimit(maxMessageSize)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var resp Response
		if err := p.conn.ReadJSON(&resp); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Error(zerr.Wrap(err, "client runtime read failed"))
			}
			s.logger.Info("client runtime disconnected")
			return
		}

		s.mu.Lock()
		ch, ok := s.pending[resp.ID]
		s.mu.Unlock()
		if !ok {
			s.logger.Debug("dropping response for unknown request " + resp.ID)
			continue
		}
		select {
		case ch <- resp:
		default:
		}
	}
}

func (s *Server) keepAlive(p *peer) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			if err := p.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				p.close()
				return
			}
		}
	}
}

func (s *Server) disconnect() {
	s.mu.Lock()
	p := s.current
	s.current = nil
	s.mu.Unlock()
	if p != nil {
		p.close()
	}
}

func (p *peer) write(v any) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(v)
}

func (p *peer) close() {
	p.once.Do(func() {
		close(p.done)
		_ = p.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		_ = p.conn.Close()
	})
}
