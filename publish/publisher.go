package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/javisen/esios-go/esios"
	"github.com/javisen/esios-go/hours"
)

// Publisher pushes the current hour's market data to an MQTT broker as
// retained state topics, one per indicator, so that home automation
// systems can subscribe without polling the HTTP API.
type Publisher struct {
	client        mqtt.Client
	logger        *slog.Logger
	prefix        string
	loc           *time.Location
	withPeriod    bool
	lastPublished time.Time
	lastHour      hours.DateHour
}

type statePayload struct {
	Value     float64 `json:"value"`
	Hour      string  `json:"hour"`
	Available bool    `json:"available"`
	Source    string  `json:"source"`
}

func New(host string, port int16, username string, password string, prefix string, loc *time.Location, indicators []string) *Publisher {
	logger := slog.Default().With("module", "publish")
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", host, port))
	opts.SetClientID("esios-go")
	opts.SetUsername(username)
	opts.SetPassword(password)
	opts.SetAutoReconnect(true)
	opts.SetWill(prefix+"/status", "offline", 0, true)
	opts.OnConnect = func(client mqtt.Client) {
		logger.Info("MQTT connected")
		client.Publish(prefix+"/status", 0, true, "online")
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		logger.Warn("MQTT connection lost", slog.Any("error", err))
	}

	mqttLog := slog.Default().With("module", "mqtt")
	mqtt.CRITICAL = newMqttLogger(mqttLog, slog.LevelError)
	mqtt.ERROR = newMqttLogger(mqttLog, slog.LevelError)
	mqtt.WARN = newMqttLogger(mqttLog, slog.LevelWarn)

	return &Publisher{
		client:     mqtt.NewClient(opts),
		logger:     logger,
		prefix:     prefix,
		loc:        loc,
		withPeriod: slices.Contains(indicators, esios.KeyPeriod),
	}
}

func (p *Publisher) Connect() error {
	p.logger.Debug("connecting MQTT client")

	if token := p.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (p *Publisher) Disconnect() {
	p.client.Publish(p.prefix+"/status", 0, true, "offline")
	p.client.Disconnect(250)
}

// Run republishes whenever a fresh snapshot arrives or the hour rolls over.
// Blocks until the context is cancelled.
func (p *Publisher) Run(ctx context.Context, inMem *esios.InMemData) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publishIfChanged(inMem)
		}
	}
}

func (p *Publisher) publishIfChanged(inMem *esios.InMemData) {
	if !inMem.Healthy() {
		return
	}

	now := hours.FromNow()
	observedAt := inMem.ObservedAt()
	if observedAt.Equal(p.lastPublished) && now == p.lastHour {
		return
	}

	if err := p.PublishCurrent(inMem, now); err != nil {
		p.logger.Error("error publishing market data", slog.Any("error", err))
		return
	}

	p.lastPublished = observedAt
	p.lastHour = now
}

// PublishCurrent pushes the value of every sensor in the snapshot for the
// given hour, plus the tariff period derived from the wall clock.
func (p *Publisher) PublishCurrent(inMem *esios.InMemData, dh hours.DateHour) error {
	state := inMem.CurrentState()

	for key := range state.Sensors {
		value, ok := inMem.ValueAt(key, dh)
		payload := statePayload{
			Value:     value,
			Hour:      dh.IsoString(),
			Available: ok && state.Availability[key],
			Source:    state.DataSource,
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshalling %s state: %w", key, err)
		}

		topic := p.topicFor(key)
		if token := p.client.Publish(topic, 0, true, data); token.Wait() && token.Error() != nil {
			return fmt.Errorf("publishing %s: %w", topic, token.Error())
		}
	}

	if p.withPeriod {
		period := esios.TariffPeriod(time.Now().In(p.loc))
		topic := p.topicFor(esios.KeyPeriod)
		if token := p.client.Publish(topic, 0, true, period); token.Wait() && token.Error() != nil {
			return fmt.Errorf("publishing %s: %w", topic, token.Error())
		}
	}

	p.logger.Debug("market data published",
		slog.Int("noOfSensors", len(state.Sensors)),
		slog.String("hour", dh.String()))

	return nil
}

func (p *Publisher) topicFor(key string) string {
	return p.prefix + "/" + strings.ToLower(key) + "/state"
}
