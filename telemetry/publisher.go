package telemetry

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Event types, also the last segment of the subject they are published on.
const (
	EventRunStarted  = "run.started"
	EventRunFinished = "run.finished"
	EventAbilityUsed = "ability.used"
)

const (
	maxReconnects = 10
	reconnectWait = 2 * time.Second
	dialTimeout   = 10 * time.Second
)

// Event is one telemetry record. Fields not relevant to Type are omitted.
type Event struct {
	Type    string `json:"type"`
	RunID   string `json:"run_id"`
	UserID  string `json:"user_id,omitempty"`
	Seed    int64  `json:"seed,omitempty"`
	Move    int    `json:"move,omitempty"`
	Ability string `json:"ability,omitempty"`
	Target  string `json:"target,omitempty"`
	Won     bool   `json:"won,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Score   int    `json:"score,omitempty"`
	At      int64  `json:"at"`
}

// Publisher sends run events to NATS. A nil *Publisher drops every event.
type Publisher struct {
	conn   *nats.Conn
	prefix string
}

// Subject returns the subject an event of the given type is published on.
func Subject(prefix, eventType string) string {
	if prefix == "" {
		return eventType
	}
	return prefix + "." + eventType
}

// NewPublisher connects to url. An empty url returns (nil, nil) and telemetry is disabled.
func NewPublisher(url, prefix string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}
	opts := []nats.Option{
		nats.Name("card-crawl-server"),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.Warn("disconnected from NATS", "tag", "telemetry", "err", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("reconnected to NATS", "tag", "telemetry", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.Info("NATS connection closed", "tag", "telemetry")
		}),
		nats.Timeout(dialTimeout),
	}
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	slog.Info("connected to NATS", "tag", "telemetry", "url", conn.ConnectedUrl())
	return &Publisher{conn: conn, prefix: prefix}, nil
}

// Publish sends ev, stamping its time when unset.
func (p *Publisher) Publish(ev Event) error {
	if p == nil || p.conn == nil {
		return nil
	}
	if ev.At == 0 {
		ev.At = time.Now().UnixMilli()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	subject := Subject(p.prefix, ev.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		slog.Error("failed to publish event", "tag", "telemetry", "subject", subject, "err", err)
		return err
	}
	slog.Debug("published event", "tag", "telemetry", "subject", subject, "run", ev.RunID)
	return nil
}

// Close flushes pending events and closes the connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
