// Package evaluator implements the remote evaluation channel over WebSocket.
// The coordinator side listens and sends code; the client runtime dials in and answers.
package evaluator

import "time"

// Request asks the client runtime to evaluate code.
type Request struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// Response carries the printed result or the error text of one Request.
type Response struct {
	ID    string `json:"id"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1 << 20
)
