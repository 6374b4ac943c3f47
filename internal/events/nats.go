package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var ErrNotConnected = errors.New("nats not connected")

// conn is the part of *nats.Conn the publisher needs.
type conn interface {
	Publish(subj string, data []byte) error
	IsConnected() bool
	Drain() error
}

type NATSConfig struct {
	URL           string
	SubjectPrefix string
	Name          string
	Log           *zap.Logger
}

type NATSPublisher struct {
	conn   conn
	prefix string
	log    *zap.Logger
}

func NewNATSPublisher(cfg NATSConfig) (*NATSPublisher, error) {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	log := cfg.Log

	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.Timeout(3*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", cfg.URL, err)
	}

	return newNATSPublisher(nc, cfg.SubjectPrefix, log), nil
}

func newNATSPublisher(c conn, prefix string, log *zap.Logger) *NATSPublisher {
	if prefix == "" {
		prefix = "warehouse"
	}
	return &NATSPublisher{
		conn:   c,
		prefix: strings.TrimSuffix(prefix, "."),
		log:    log,
	}
}

// Subject is "<prefix>.<event type>", e.g. warehouse.product.created.
func (p *NATSPublisher) Subject(t Type) string {
	return p.prefix + "." + string(t)
}

func (p *NATSPublisher) Publish(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", ev.ID, err)
	}

	subj := p.Subject(ev.Type)
	if err := p.conn.Publish(subj, data); err != nil {
		return fmt.Errorf("publish %s: %w", subj, err)
	}

	p.log.Debug("event published",
		zap.String("subject", subj),
		zap.String("event_id", ev.ID),
		zap.Int("product_id", ev.Product.ID),
	)
	return nil
}

func (p *NATSPublisher) Ping(context.Context) error {
	if !p.conn.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// Close flushes pending messages before closing the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
