package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan-widget/internal/http/api/widget/packets"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/widget"
)

const (
	DefaultTopicPrefix = "widgets"
	publishTimeout     = 5 * time.Second
	quiesceMillis      = 250
)

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// Publisher pushes widget views to per-instance topics.
type Publisher struct {
	client mqtt.Client
	prefix string
}

// Connect dials the broker and returns a Publisher writing under topicPrefix.
func Connect(brokerURL, clientID, topicPrefix string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return NewPublisher(client, topicPrefix), nil
}

func NewPublisher(client mqtt.Client, topicPrefix string) *Publisher {
	prefix := strings.Trim(topicPrefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return &Publisher{client: client, prefix: prefix}
}

func (p *Publisher) Topic(id widget.InstanceID) string {
	return fmt.Sprintf("%s/%s/view", p.prefix, id)
}

// Deliver publishes the view retained with QoS 1, so a widget that
// reconnects gets the last view straight away.
func (p *Publisher) Deliver(ctx context.Context, id widget.InstanceID, view packets.WidgetView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("encode view for widget %s: %w", id, err)
	}

	topic := p.Topic(id)
	token := p.client.Publish(topic, 1, true, payload)

	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish to %s timed out after %s", topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to send view to widget %s: %w", id, err)
	}

	log.Debug().Str("widget_id", string(id)).Str("topic", topic).Msg("view sent via MQTT")
	return nil
}

func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(quiesceMillis)
		log.Info().Msg("MQTT client disconnected")
	}
}
