package events

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

type NatsConfig struct {
	URL           string
	MaxReconnects int
	ReconnectWait time.Duration
	ClientName    string
}

// NatsConn is a connected NATS client.
type NatsConn struct {
	conn *nats.Conn
}

func Connect(cfg NatsConfig, log *logrus.Entry) (*NatsConn, error) {
	opts := []nats.Option{
		nats.Name(cfg.ClientName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, err
	}

	return &NatsConn{conn: conn}, nil
}

func (c *NatsConn) Publish(subject string, data []byte) error {
	return c.conn.Publish(subject, data)
}

// Close drains pending messages before closing.
func (c *NatsConn) Close() {
	if c.conn != nil {
		_ = c.conn.Drain()
	}
}
