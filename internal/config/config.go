package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strings"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Payment and broker settings are optional: when
// they are empty the matching feature degrades (the Stripe webhook answers
// 500 "missing configuration", change events stay in-process).
type Config struct {
	Env       string // application environment (e.g. "dev", "prod")
	Port      string // HTTP port to listen on
	DBUser    string // database username
	DBPass    string // database password (optional)
	DBHost    string // database host address
	DBPort    string // database port number
	DBName    string // database name
	JWTSecret string // secret shared with the auth provider to verify access tokens

	StripeSecretKey     string // API key used for customer lookups and checkout sessions
	StripeWebhookSecret string // signing secret of the webhook endpoint
	BaseURL             string // dashboard origin used for checkout return URLs
	CheckoutCurrency    string // ISO currency of minute packs
	PacksFile           string // optional YAML override of the pack catalog

	RabbitURL       string // broker URL for the change feed (empty = in-process only)
	ChangesExchange string // fanout exchange carrying change events

	WebhookLogBackend string // "mysql" or "dynamodb"
	WebhookLogsTable  string // DynamoDB table name when the backend is dynamodb
	AWSRegion         string // region of the DynamoDB table
	DynamoEndpoint    string // local DynamoDB endpoint (optional)
	AWSAccessKey      string // static credentials for a local DynamoDB (optional)
	AWSSecretKey      string

	ForwardURL     string        // inbound webhook of the automation platform (empty = relay disabled)
	ForwardTimeout time.Duration // per-request timeout of the relay
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	rabbit := os.Getenv("RABBITMQ_URL")
	if rabbit == "" {
		rabbit = os.Getenv("AMQP_URL")
	}
	return Config{
		Env:       must("APP_ENV"),      // environment (dev/test/prod)
		Port:      must("APP_PORT"),     // port to bind the HTTP server
		DBUser:    must("DB_USER"),      // database user
		DBPass:    os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:    must("DB_HOST"),      // database host
		DBPort:    must("DB_PORT"),      // database port
		DBName:    must("DB_NAME"),      // database name
		JWTSecret: must("JWT_SECRET"),   // secret used for verifying JWTs

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		BaseURL:             strings.TrimRight(envStr("APP_BASE_URL", "http://localhost:3000"), "/"),
		CheckoutCurrency:    strings.ToLower(envStr("CHECKOUT_CURRENCY", "eur")),
		PacksFile:           os.Getenv("PACKS_FILE"),

		RabbitURL:       rabbit,
		ChangesExchange: envStr("CHANGES_EXCHANGE", "dashboard.changes"),

		WebhookLogBackend: strings.ToLower(envStr("WEBHOOK_LOG_BACKEND", "mysql")),
		WebhookLogsTable:  envStr("WEBHOOK_LOGS_TABLE", "webhook_logs"),
		AWSRegion:         envStr("AWS_REGION", "us-east-1"),
		DynamoEndpoint:    os.Getenv("DYNAMODB_ENDPOINT"),
		AWSAccessKey:      os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:      os.Getenv("AWS_SECRET_ACCESS_KEY"),

		ForwardURL:     os.Getenv("AUTOMATION_FORWARD_URL"),
		ForwardTimeout: envDur("AUTOMATION_FORWARD_TIMEOUT", 10*time.Second),
	}
}

// LoadDB reads only the database settings.  The migrate subcommand uses it
// so that schema changes do not require the full server environment.
func LoadDB() Config {
	return Config{
		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: must("DB_HOST"),
		DBPort: must("DB_PORT"),
		DBName: must("DB_NAME"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
