package mastodon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// ErrMalformedEvent wraps stream frames that cannot be decoded. Callers use
// it to pick the reconnect backoff class.
var ErrMalformedEvent = errors.New("malformed stream event")

// StreamCallbacks receives decoded user-stream events. Nil callbacks skip
// the event kind.
type StreamCallbacks struct {
	Notification func(n *Notification) error
	Update       func(s *Status) error
	Delete       func(id string) error
}

// streamFrame is the wire format of the streaming API: the payload of
// notification/update frames is a JSON document encoded as a string.
type streamFrame struct {
	Stream  []string `json:"stream"`
	Event   string   `json:"event"`
	Payload string   `json:"payload"`
}

// DialUserStream opens the websocket user stream (mentions plus home
// timeline). The caller owns the returned connection.
func (c *Client) DialUserStream(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(c.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid instance URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/api/v1/streaming"
	q := url.Values{}
	q.Set("stream", "user")
	q.Set("access_token", c.AccessToken)
	u.RawQuery = q.Encode()

	dialer := websocket.DefaultDialer
	con, _, err := dialer.DialContext(ctx, u.String(), http.Header{
		"User-Agent": []string{c.userAgent()},
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to user stream failed (dialing): %w", err)
	}
	return con, nil
}

// pingConn is the slice of *websocket.Conn the keepalive loop needs.
type pingConn interface {
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// pingLoop keeps the connection alive and owns its teardown: whether the
// context ends or a ping write fails, the connection is closed so a read
// blocked in HandleUserStream always unblocks and the caller can reconnect.
func pingLoop(ctx context.Context, con pingConn, interval time.Duration) {
	defer con.Close()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			if err := con.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second*10)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// HandleUserStream reads frames from the connection and dispatches them to
// the callbacks until the context is cancelled or the connection fails. The
// connection is closed on return.
func HandleUserStream(ctx context.Context, con *websocket.Conn, cb *StreamCallbacks) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go pingLoop(ctx, con, time.Second*30)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		mt, data, err := con.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return fmt.Errorf("%w: expected text message from streaming endpoint, got type %d", ErrMalformedEvent, mt)
		}

		framesReceived.Inc()

		var frame streamFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return fmt.Errorf("%w: decoding frame: %v", ErrMalformedEvent, err)
		}

		if err := dispatchFrame(&frame, cb); err != nil {
			return err
		}
	}
}

func dispatchFrame(frame *streamFrame, cb *StreamCallbacks) error {
	switch frame.Event {
	case "notification":
		if cb.Notification == nil {
			return nil
		}
		var n Notification
		if err := json.Unmarshal([]byte(frame.Payload), &n); err != nil {
			return fmt.Errorf("%w: decoding notification payload: %v", ErrMalformedEvent, err)
		}
		return cb.Notification(&n)
	case "update", "status.update":
		if cb.Update == nil {
			return nil
		}
		var s Status
		if err := json.Unmarshal([]byte(frame.Payload), &s); err != nil {
			return fmt.Errorf("%w: decoding status payload: %v", ErrMalformedEvent, err)
		}
		return cb.Update(&s)
	case "delete":
		if cb.Delete == nil {
			return nil
		}
		return cb.Delete(frame.Payload)
	default:
		// filters_changed, announcements, and future event kinds
		return nil
	}
}
