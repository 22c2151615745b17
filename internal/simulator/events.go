package simulator

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/imamik/cbdctl/internal/platform/cbd"
)

// EventSubject is the NATS subject lifecycle events are published on.
const EventSubject = "clusters.events"

// ClusterEvent is one lifecycle notification.
type ClusterEvent struct {
	Event  string `json:"event"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Time   int64  `json:"time"`
}

// Publisher publishes lifecycle events to NATS.
type Publisher struct {
	nc  *nats.Conn
	log *zap.Logger
}

// NewPublisher connects to the NATS server at url.
func NewPublisher(url string, log *zap.Logger) (*Publisher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	opts := []nats.Option{
		nats.Name("cbdsim"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	return &Publisher{nc: nc, log: log}, nil
}

// PublishClusterEvent publishes one lifecycle event for a cluster.
func (p *Publisher) PublishClusterEvent(event string, c *cbd.Cluster) error {
	if p.nc == nil || p.nc.IsClosed() {
		return fmt.Errorf("nats not connected")
	}

	ev := ClusterEvent{
		Event:  event,
		ID:     c.ID,
		Name:   c.Name,
		Status: c.Status,
		Time:   time.Now().Unix(),
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.nc.Publish(EventSubject, payload)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
		p.nc.Close()
	}
}
