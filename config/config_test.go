package config_test

import (
	"testing"

	"turfbook/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 700, cfg.Booking.DefaultAmount)
	assert.Equal(t, "CASH", cfg.Booking.DefaultTransactionRef)
	assert.Equal(t, "booking.created", cfg.Kafka.Topics.BookingCreated)
}

func TestParse_FromEnvironment(t *testing.T) {
	t.Setenv("DB_POSTGRES_WRITE_HOST", "primary.db")
	t.Setenv("CACHE_REDIS_PRIMARY_PORT", "6380")
	t.Setenv("APP_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "primary.db", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, "6380", cfg.Cache.Redis.Primary.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORS.AllowedOrigins)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestParse_Invalid(t *testing.T) {
	t.Run("malformed number", func(t *testing.T) {
		t.Setenv("BOOKING_DEFAULT_AMOUNT", "seven hundred")

		_, err := config.Parse()
		assert.Error(t, err)
	})

	t.Run("empty reconcile batch", func(t *testing.T) {
		t.Setenv("BOOKING_RECONCILE_BATCH_SIZE", "0")

		_, err := config.Parse()
		assert.ErrorContains(t, err, "BOOKING_RECONCILE_BATCH_SIZE")
	})
}
