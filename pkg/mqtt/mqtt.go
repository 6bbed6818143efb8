// Package mqtt publishes moderation lifecycle events to an MQTT broker.
// External tooling (the dashboard, audit collectors) subscribes to the
// cipher/warnings/# topic tree to follow warnings as they are issued and
// responded to.
package mqtt

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/voidswithin/cipher/pkg/logger"
)

// Topics for warning lifecycle events
const (
	TopicWarningIssued       = "cipher/warnings/issued"
	TopicWarningAcknowledged = "cipher/warnings/acknowledged"
	TopicWarningQuestioned   = "cipher/warnings/questioned"
	TopicWarningExpired      = "cipher/warnings/expired"
)

// WarningEvent is the payload published for every lifecycle event
type WarningEvent struct {
	WarningID int64     `json:"warningId"`
	UserID    string    `json:"userId"`
	IssuedBy  string    `json:"issuedBy"`
	Template  string    `json:"template,omitempty"`
	Severity  string    `json:"severity,omitempty"`
	At        time.Time `json:"at"`
}

// EventFeed handles the MQTT connection and event publishing
type EventFeed struct {
	client   mqtt.Client
	clientID string
}

var (
	feed *EventFeed
	once sync.Once
)

// Init initializes the global event feed
func Init(host, port, username, password, clientID string) *EventFeed {
	once.Do(func() {
		feed = NewEventFeed(host, port, username, password, clientID)
	})
	return feed
}

// Get returns the global event feed
func Get() *EventFeed {
	return feed
}

// NewEventFeed creates an event feed and connects to the broker
func NewEventFeed(host, port, username, password, clientID string) *EventFeed {
	ef := &EventFeed{clientID: clientID}

	// Unique client ID so parallel deployments don't kick each other off
	uniqueID := fmt.Sprintf("%s_%s", clientID, uuid.New().String())

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%s", host, port)).
		SetClientID(uniqueID).
		SetUsername(username).
		SetPassword(password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			logger.Success(fmt.Sprintf("Connected to MQTT broker as %s", clientID), "MQTT")
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			logger.Error(fmt.Sprintf("MQTT connection lost: %v", err), "MQTT")
		})

	ef.client = mqtt.NewClient(opts)

	token := ef.client.Connect()
	if token.Wait() && token.Error() != nil {
		logger.Error(fmt.Sprintf("MQTT connection error: %v", token.Error()), "MQTT")
	}

	return ef
}

// Destroy closes the MQTT connection
func (ef *EventFeed) Destroy() {
	if ef.client != nil && ef.client.IsConnected() {
		ef.client.Disconnect(250)
		logger.System("MQTT connection closed.", "MQTT")
	} else {
		logger.Warn("MQTT client was not connected, nothing to close.", "MQTT")
	}
}

// IsConnected returns true if connected to the broker
func (ef *EventFeed) IsConnected() bool {
	return ef.client != nil && ef.client.IsConnected()
}

// Publish sends a JSON payload to a topic
func (ef *EventFeed) Publish(topic string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	token := ef.client.Publish(topic, 0, false, jsonData)
	token.Wait()
	return token.Error()
}

// Subscribe subscribes to a topic with a message handler
func (ef *EventFeed) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	token := ef.client.Subscribe(topic, 0, func(c mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	token.Wait()
	return token.Error()
}

// publishEvent publishes a lifecycle event, logging instead of failing the
// caller: moderation flow never blocks on the broker.
func (ef *EventFeed) publishEvent(topic string, ev WarningEvent) {
	if ef == nil || !ef.IsConnected() {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if err := ef.Publish(topic, ev); err != nil {
		logger.Warn(fmt.Sprintf("Failed to publish %s: %v", topic, err), "MQTT")
	}
}

// WarningIssued announces a newly recorded warning
func (ef *EventFeed) WarningIssued(ev WarningEvent) {
	ef.publishEvent(TopicWarningIssued, ev)
}

// WarningAcknowledged announces that the member acknowledged their warning
func (ef *EventFeed) WarningAcknowledged(ev WarningEvent) {
	ef.publishEvent(TopicWarningAcknowledged, ev)
}

// WarningQuestioned announces that the member asked for clarification
func (ef *EventFeed) WarningQuestioned(ev WarningEvent) {
	ef.publishEvent(TopicWarningQuestioned, ev)
}

// WarningExpired announces that the response window closed without a reply
func (ef *EventFeed) WarningExpired(ev WarningEvent) {
	ef.publishEvent(TopicWarningExpired, ev)
}
