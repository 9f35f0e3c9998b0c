package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"turfbook/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	handleAttempts = 3
	retryBackoff   = time.Second
)

// Message is an outgoing event. Value is sent as JSON.
type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{Key: []byte(m.Key), Value: value}, nil
}

// DecodeKafkaMessage unmarshals the JSON value of msg into T.
func DecodeKafkaMessage[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		log.Error().Err(err).Str("topic", msg.Topic).Msg("Failed to unmarshal Kafka message value from JSON")

		return value, fmt.Errorf("failed to unmarshal Kafka message value from JSON: %w", err)
	}

	return value, nil
}

// Handler processes one consumed message. The offset is committed once it
// returns nil, or after the last failed attempt.
type Handler func(ctx context.Context, message kafkaGo.Message) error

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Consume(ctx context.Context, consumerGroup, topic string, handler Handler)
}

type kafkaClientImpl struct {
	config *config.Config
	dialer *kafkaGo.Dialer
	writer *kafkaGo.Writer
}

func New(cfg *config.Config) Client {
	var mechanism sasl.Mechanism
	if cfg.Kafka.SASL.Username != "" {
		mechanism = plain.Mechanism{
			Username: cfg.Kafka.SASL.Username,
			Password: cfg.Kafka.SASL.Password,
		}
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Bool("sasl", mechanism != nil).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config: cfg,
		dialer: &kafkaGo.Dialer{
			DualStack:     true,
			Timeout:       10 * time.Second,
			SASLMechanism: mechanism,
		},
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
			Transport:              &kafkaGo.Transport{SASL: mechanism},
			Balancer:               &kafkaGo.Hash{},
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafkaGo.RequireOne,
		},
	}
}

// SendMessages publishes messages to topic. Messages with the same key land
// on the same partition.
func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to convert message to Kafka message.")

			return err
		}

		msg.Topic = topic
		msgs = append(msgs, msg)
	}

	if err = k.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Int("count", len(msgs)).Msg("Sent messages.")

	return nil
}

// Consume reads topic as member of consumerGroup until ctx is done, one
// message at a time.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler Handler) {
	if topic == "" {
		log.Error().Msg("Cannot consume without a topic")

		return
	}

	groupID := consumerGroup
	if groupID == "" {
		groupID = k.config.Kafka.ConsumerGroup
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close Kafka reader.")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Info().Str("topic", topic).Msg("Consumer stopped.")

			return
		}

		if errors.Is(err, io.EOF) {
			return
		}

		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to fetch message from Kafka.")

			select {
			case <-ctx.Done():
				return
			case <-time.After(retryBackoff):
			}

			continue
		}

		Handle(ctx, handler, msg)

		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to commit offset.")
		}
	}
}

// Handle runs handler on msg, retrying failures with a fixed backoff. It
// reports whether the message was eventually handled.
func Handle(ctx context.Context, handler Handler, msg kafkaGo.Message) bool {
	for attempt := 1; attempt <= handleAttempts; attempt++ {
		err := handler(ctx, msg)
		if err == nil {
			return true
		}

		log.Warn().Err(err).
			Str("topic", msg.Topic).
			Str("key", string(msg.Key)).
			Int("attempt", attempt).
			Msg("Failed to handle message.")

		if attempt == handleAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(retryBackoff):
		}
	}

	log.Error().Str("topic", msg.Topic).Int64("offset", msg.Offset).Msg("Giving up on message.")

	return false
}
