// Package notify implements the MQTT run-status notifier.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	corenotify "github.com/dongqi-wu/reisego/core/notify"
	"github.com/dongqi-wu/reisego/infra/logger"
)

const publishTimeout = 5 * time.Second

// Config defines the connection parameters for the MQTT notifier. An empty
// broker disables notification entirely.
type Config struct {
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
	Retain      bool   `json:"retain"`
}

// SetDefaults fills derivable fields.
func (c *Config) SetDefaults() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = "reise"
	}
	if c.ClientID == "" {
		// Unique suffix so parallel runs do not evict each other's session.
		c.ClientID = "reisego-" + uuid.NewString()[:8]
	}
}

type pahoClient interface {
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// MQTTNotifier publishes run events to an MQTT broker:
//
//	{prefix}/scenario/{id}/status   {"scenario_id","status","at"}
//	{prefix}/scenario/{id}/progress {"scenario_id","interval","total","at"}
type MQTTNotifier struct {
	cli    pahoClient
	prefix string
	qos    byte
	retain bool
	log    logger.Logger
}

// New connects to the broker in cfg. An empty broker yields a NopNotifier.
func New(cfg Config) (corenotify.Notifier, error) {
	if cfg.Broker == "" {
		return corenotify.NopNotifier{}, nil
	}
	cfg.SetDefaults()
	log := logger.New("notifier")

	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}

	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Broker, token.Error())
	}
	log.Infof("connected to %s as %s", cfg.Broker, cfg.ClientID)
	return &MQTTNotifier{
		cli:    cli,
		prefix: cfg.TopicPrefix,
		qos:    cfg.QoS,
		retain: cfg.Retain,
		log:    log,
	}, nil
}

// NotifyStatus publishes one status transition.
func (n *MQTTNotifier) NotifyStatus(ctx context.Context, scenarioID, status string) error {
	topic := fmt.Sprintf("%s/scenario/%s/status", n.prefix, scenarioID)
	return n.publish(ctx, topic, map[string]any{
		"scenario_id": scenarioID,
		"status":      status,
		"at":          time.Now().UTC().Format(time.RFC3339),
	})
}

// NotifyProgress publishes one engine interval completion.
func (n *MQTTNotifier) NotifyProgress(ctx context.Context, scenarioID string, interval, total int) error {
	topic := fmt.Sprintf("%s/scenario/%s/progress", n.prefix, scenarioID)
	return n.publish(ctx, topic, map[string]any{
		"scenario_id": scenarioID,
		"interval":    interval,
		"total":       total,
		"at":          time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *MQTTNotifier) publish(ctx context.Context, topic string, doc map[string]any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	token := n.cli.Publish(topic, n.qos, n.retain, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return ctx.Err()
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() error {
	n.cli.Disconnect(250)
	return nil
}
