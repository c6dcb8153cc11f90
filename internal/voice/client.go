package voice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Session is one live provider connection. Events are delivered in
// receipt order on a single channel that closes when the provider hangs
// up or the connection drops.
type Session interface {
	Events() <-chan Event
	Stop() error
	Close() error
}

// Dialer opens provider sessions. The controller owns the handle it gets
// back and releases it when the session ends; there is no package-level
// client instance.
type Dialer interface {
	Dial(ctx context.Context, start StartRequest) (Session, error)
}

// Client dials the provider's websocket endpoint.
type Client struct {
	url    string
	logger *zap.Logger
}

func NewClient(url string, logger *zap.Logger) *Client {
	return &Client{url: url, logger: logger}
}

// control frames sent to the provider
type controlFrame struct {
	Type  string        `json:"type"` // "start" | "stop"
	Start *StartRequest `json:"start,omitempty"`
}

type wsSession struct {
	conn   *websocket.Conn
	events chan Event
	logger *zap.Logger
}

func (c *Client) Dial(ctx context.Context, start StartRequest) (Session, error) {
	if c.url == "" {
		return nil, errors.New("voice provider URL not configured")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return nil, err
	}

	if err := conn.WriteJSON(controlFrame{Type: "start", Start: &start}); err != nil {
		conn.Close()
		return nil, err
	}

	s := &wsSession{
		conn:   conn,
		events: make(chan Event, 16),
		logger: c.logger,
	}
	go s.readPump()

	return s, nil
}

func (s *wsSession) Events() <-chan Event {
	return s.events
}

// Stop asks the provider to terminate the session. It does not wait for
// a call-end acknowledgment; the caller declares the session finished
// on its own.
func (s *wsSession) Stop() error {
	s.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return s.conn.WriteJSON(controlFrame{Type: "stop"})
}

func (s *wsSession) Close() error {
	return s.conn.Close()
}

// readPump decodes server messages into events until the connection
// drops, then closes the event channel.
func (s *wsSession) readPump() {
	defer close(s.events)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("voice connection closed", zap.Error(err))
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			s.logger.Warn("undecodable voice provider message", zap.Error(err))
			continue
		}
		if ev.Type == "" {
			continue
		}
		s.events <- ev
	}
}
