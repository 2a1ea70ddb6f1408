// Package config defines the environment variable and command-line flags
// supported by this service and includes default values for particular
// fields.
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/companieshouse/gofigure"
	"github.com/go-playground/validator/v10"
)

var cfg *Config
var mtx sync.Mutex

// Config defines the configuration options for this service.
type Config struct {
	BindAddr          string   `env:"BIND_ADDR"                  flag:"bind-addr"                  flagDesc:"Bind address"                                  validate:"required"`
	MongoDBURL        string   `env:"MONGODB_URL"                flag:"mongodb-url"                flagDesc:"MongoDB server URL"`
	Database          string   `env:"MONGODB_DATABASE"           flag:"mongodb-database"           flagDesc:"MongoDB database for data"                    validate:"required"`
	RefundCollection  string   `env:"MONGODB_REFUND_COLLECTION"  flag:"mongodb-refund-collection"  flagDesc:"MongoDB collection for refunds"               validate:"required"`
	WebhookCollection string   `env:"MONGODB_WEBHOOK_COLLECTION" flag:"mongodb-webhook-collection" flagDesc:"MongoDB collection for webhook notifications" validate:"required"`
	BrokerAddr        []string `env:"KAFKA_BROKER_ADDR"          flag:"broker-addr"                flagDesc:"Kafka broker address"`
	SchemaRegistryURL string   `env:"SCHEMA_REGISTRY_URL"        flag:"schema-registry-url"        flagDesc:"Schema registry url"`
	RedisURL          string   `env:"REDIS_URL"                  flag:"redis-url"                  flagDesc:"Redis URL used for job locks across instances"`

	RefundAgeThreshold string `env:"REFUND_AGE_THRESHOLD" flag:"refund-age-threshold" flagDesc:"Age after which a processing refund is settled" validate:"required"`
	RefundTickInterval string `env:"REFUND_TICK_INTERVAL" flag:"refund-tick-interval" flagDesc:"Interval between refund lifecycle runs"          validate:"required"`

	WebhookTickInterval    string `env:"WEBHOOK_TICK_INTERVAL"    flag:"webhook-tick-interval"    flagDesc:"Interval between webhook retry runs"            validate:"required"`
	WebhookMaxAttempts     int    `env:"WEBHOOK_MAX_ATTEMPTS"     flag:"webhook-max-attempts"     flagDesc:"Delivery attempts before a webhook is exhausted" validate:"gte=1"`
	WebhookBackoffBase     string `env:"WEBHOOK_BACKOFF_BASE"     flag:"webhook-backoff-base"     flagDesc:"Base interval of the webhook retry backoff"     validate:"required"`
	WebhookBackoffFloor    string `env:"WEBHOOK_BACKOFF_FLOOR"    flag:"webhook-backoff-floor"    flagDesc:"Minimum interval between webhook attempts"      validate:"required"`
	WebhookBackoffCap      string `env:"WEBHOOK_BACKOFF_CAP"      flag:"webhook-backoff-cap"      flagDesc:"Maximum interval between webhook attempts"      validate:"required"`
	WebhookDeliveryTimeout string `env:"WEBHOOK_DELIVERY_TIMEOUT" flag:"webhook-delivery-timeout" flagDesc:"Timeout of a single webhook delivery attempt"    validate:"required"`
	WebhookConcurrency     int    `env:"WEBHOOK_CONCURRENCY"      flag:"webhook-concurrency"      flagDesc:"Webhooks delivered concurrently within a run"   validate:"gte=1"`
	WebhookSigningSecret   string `env:"WEBHOOK_SIGNING_SECRET"   flag:"webhook-signing-secret"   flagDesc:"Secret used to sign webhook payloads"`
}

// Schedule holds the parsed durations that drive the periodic jobs.
type Schedule struct {
	RefundAgeThreshold     time.Duration
	RefundTickInterval     time.Duration
	WebhookTickInterval    time.Duration
	WebhookBackoffBase     time.Duration
	WebhookBackoffFloor    time.Duration
	WebhookBackoffCap      time.Duration
	WebhookDeliveryTimeout time.Duration
}

// DefaultConfig returns a pointer to a Config instance that has been populated
// with default values.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:               ":8080",
		Database:               "payments",
		RefundCollection:       "refunds",
		WebhookCollection:      "webhook_notifications",
		RefundAgeThreshold:     "2m",
		RefundTickInterval:     "30s",
		WebhookTickInterval:    "60s",
		WebhookMaxAttempts:     8,
		WebhookBackoffBase:     "1m",
		WebhookBackoffFloor:    "60s",
		WebhookBackoffCap:      "6h",
		WebhookDeliveryTimeout: "10s",
		WebhookConcurrency:     4,
	}
}

// Get returns a pointer to a Config instance that has been populated with
// values provided by the environment or command-line flags, or with default
// values if none are provided.
func Get() (*Config, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig()

	err := gofigure.Gofigure(cfg)
	if err != nil {
		return nil, err
	}

	err = validator.New().Struct(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: [%v]", err)
	}

	return cfg, nil
}

// Schedule parses the duration options of the config. Every duration must be
// positive and the webhook backoff floor must not exceed its cap.
func (c *Config) Schedule() (*Schedule, error) {
	schedule := &Schedule{}
	fields := []struct {
		name  string
		value string
		dest  *time.Duration
	}{
		{"refund age threshold", c.RefundAgeThreshold, &schedule.RefundAgeThreshold},
		{"refund tick interval", c.RefundTickInterval, &schedule.RefundTickInterval},
		{"webhook tick interval", c.WebhookTickInterval, &schedule.WebhookTickInterval},
		{"webhook backoff base", c.WebhookBackoffBase, &schedule.WebhookBackoffBase},
		{"webhook backoff floor", c.WebhookBackoffFloor, &schedule.WebhookBackoffFloor},
		{"webhook backoff cap", c.WebhookBackoffCap, &schedule.WebhookBackoffCap},
		{"webhook delivery timeout", c.WebhookDeliveryTimeout, &schedule.WebhookDeliveryTimeout},
	}

	for _, field := range fields {
		d, err := time.ParseDuration(field.value)
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: [%v]", field.name, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%s must be positive, got [%s]", field.name, field.value)
		}
		*field.dest = d
	}

	if schedule.WebhookBackoffFloor > schedule.WebhookBackoffCap {
		return nil, fmt.Errorf("webhook backoff floor [%s] exceeds cap [%s]", schedule.WebhookBackoffFloor, schedule.WebhookBackoffCap)
	}

	return schedule, nil
}

// KafkaEnabled reports whether enough configuration is present to produce
// kafka messages.
func (c *Config) KafkaEnabled() bool {
	return len(c.BrokerAddr) > 0 && c.SchemaRegistryURL != ""
}
