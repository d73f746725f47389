package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/icydoge/avaroute/internal/core/domain"
)

// Subjects of route events.
const (
	RouteSubjectPrefix = "routes.computed."
	RouteSubjectAll    = "routes.>"
)

// routeStream retains route events for a week so late WebSocket
// subscribers and offline consumers can replay them.
var routeStream = nats.StreamConfig{
	Name:      "ROUTES",
	Subjects:  []string{RouteSubjectAll},
	Retention: nats.LimitsPolicy,
	MaxAge:    7 * 24 * time.Hour,
	Storage:   nats.FileStorage,
}

// ensureStream creates cfg, or updates it when it already exists.
func ensureStream(js nats.JetStreamContext, cfg nats.StreamConfig) error {
	if _, err := js.StreamInfo(cfg.Name); err == nil {
		if _, err := js.UpdateStream(&cfg); err != nil {
			return fmt.Errorf("update stream %s: %w", cfg.Name, err)
		}
		return nil
	}
	if _, err := js.AddStream(&cfg); err != nil {
		return fmt.Errorf("add stream %s: %w", cfg.Name, err)
	}
	return nil
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if err := ensureStream(js, routeStream); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, js: js}, nil
}

// RouteSubject returns the subject a route event for location is published
// on. Characters that are not valid in a subject token become underscores.
func RouteSubject(location string) string {
	token := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '*', '>', '\t':
			return '_'
		}
		return r
	}, strings.ToLower(location))
	if token == "" {
		token = "unknown"
	}
	return RouteSubjectPrefix + token
}

// PublishRouteComputed publishes event on its location subject and waits
// for the JetStream ack.
func (p *Publisher) PublishRouteComputed(ctx context.Context, event *domain.RouteComputed) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(RouteSubject(event.Location), data, nats.Context(ctx))
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn opens a core NATS connection that keeps retrying in the
// background. The WebSocket relay subscribes through it.
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
