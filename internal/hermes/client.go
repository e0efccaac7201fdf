package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const drainTimeout = 5 * time.Second

// Client is a thin NATS wrapper that publishes JSON payloads.
type Client struct {
	conn   *nats.Conn
	closed chan struct{}
	logger *slog.Logger
}

func NewClient(ctx context.Context, url, token string, logger *slog.Logger) (*Client, error) {
	closed := make(chan struct{})
	opts := []nats.Option{
		nats.Name("resonance"),
		nats.DrainTimeout(drainTimeout),
		nats.ClosedHandler(func(_ *nats.Conn) {
			close(closed)
		}),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, closed: closed, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

// Subscribe registers handler for subject. A non-empty queue joins a queue
// group so that replicas share the subject's messages instead of each
// receiving all of them.
func (c *Client) Subscribe(subject, queue string, handler func(subject string, data []byte)) error {
	cb := func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	}
	var err error
	if queue != "" {
		_, err = c.conn.QueueSubscribe(subject, queue, cb)
	} else {
		_, err = c.conn.Subscribe(subject, cb)
	}
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.logger.Info("subscribed", "subject", subject, "queue", queue)
	return nil
}

// Connected reports whether the underlying connection is up.
func (c *Client) Connected() bool {
	return c.conn.IsConnected()
}

// Close drains every subscription so in-flight messages finish, flushes
// pending publishes, and waits for the connection to close.
func (c *Client) Close() {
	if c.conn.IsClosed() {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.logger.Warn("nats drain", "error", err)
		c.conn.Close()
		return
	}
	select {
	case <-c.closed:
	case <-time.After(drainTimeout + time.Second):
		c.logger.Warn("nats drain timed out, closing")
		c.conn.Close()
	}
}
