package evaluator

import (
	"context"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/zerr"
)

// Agent is the client runtime's end of the channel. It dials the coordinator and
// answers each request with the result of a local evaluator.
type Agent struct {
	url    string
	logger ports.Logger
	dialer *websocket.Dialer
}

// NewAgent creates an Agent for the coordinator at addr (host:port).
func NewAgent(addr string, logger ports.Logger) *Agent {
	u := url.URL{Scheme: "ws", Host: addr, Path: domain.EvalPath}
	return &Agent{
		url:    u.String(),
		logger: logger,
		dialer: &websocket.Dialer{HandshakeTimeout: writeWait},
	}
}

// URL returns the endpoint the agent dials.
func (a *Agent) URL() string {
	return a.url
}

// Run dials the coordinator and serves requests until ctx is done or the
// connection closes. Requests are evaluated one at a time, in arrival order.
func (a *Agent) Run(ctx context.Context, target ports.Evaluator) error {
	conn, resp, err := a.dialer.DialContext(ctx, a.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to dial coordinator"), "url", a.url)
	}
	defer func() { _ = conn.Close() }()
	a.logger.Info("connected to coordinator at " + a.url)

	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		_ = conn.Close()
	})
	defer stop()

	conn.SetReadLimit(maxMessageSize)
	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return zerr.Wrap(err, domain.ErrConnectionClosed.Error())
		}

		out := Response{ID: req.ID}
		value, evalErr := target.Evaluate(ctx, req.Code)
		if evalErr != nil {
			a.logger.Error(evalErr)
			out.Error = evalErr.Error()
		} else {
			out.Value = value
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(out); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return zerr.Wrap(err, domain.ErrConnectionClosed.Error())
		}
	}
}
