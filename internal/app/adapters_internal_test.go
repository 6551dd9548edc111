package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobguard/jobguard/internal/infrastructure/config"
	"github.com/jobguard/jobguard/pkg/observability"
)

func TestKafkaProducerConfig(t *testing.T) {
	t.Run("plaintext", func(t *testing.T) {
		cfg := kafkaProducerConfig(config.EventsConfig{KafkaBrokers: "a:9092, b:9092"})
		assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Brokers)
		assert.False(t, cfg.TLS)
		assert.False(t, cfg.SASLEnabled)
	})

	t.Run("tls and scram", func(t *testing.T) {
		cfg := kafkaProducerConfig(config.EventsConfig{
			KafkaBrokers:       "kafka:9093",
			KafkaTLS:           true,
			KafkaSASLMechanism: "SCRAM-SHA-512",
			KafkaSASLUsername:  "jobguard",
			KafkaSASLPassword:  "secret",
		})
		assert.True(t, cfg.TLS)
		assert.True(t, cfg.SASLEnabled)
		assert.Equal(t, "SCRAM-SHA-512", cfg.SASLMechanism)
		assert.Equal(t, "jobguard", cfg.SASLUsername)
		assert.Equal(t, "secret", cfg.SASLPassword)
	})
}

func TestOpenPublisher_KafkaRejectsUnknownMechanism(t *testing.T) {
	_, _, err := OpenPublisher(config.EventsConfig{
		Broker:             config.BrokerKafka,
		KafkaBrokers:       "kafka:9093",
		KafkaSASLMechanism: "GSSAPI",
	}, observability.NopLogger())
	assert.ErrorContains(t, err, "unsupported SASL mechanism")
}

func TestOpenPublisher_KafkaWithSASL(t *testing.T) {
	pub, closeFn, err := OpenPublisher(config.EventsConfig{
		Broker:             config.BrokerKafka,
		KafkaBrokers:       "kafka:9093",
		KafkaTopic:         "jobguard.events",
		KafkaTLS:           true,
		KafkaSASLMechanism: "PLAIN",
		KafkaSASLUsername:  "jobguard",
		KafkaSASLPassword:  "secret",
	}, observability.NopLogger())
	require.NoError(t, err)
	assert.NotNil(t, pub)
	require.NoError(t, closeFn())
}
