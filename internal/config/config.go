package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	LedgerBackendSheets   = "sheets"
	LedgerBackendDynamoDB = "dynamodb"
)

// Config is built once at startup and handed to every component that needs it.
type Config struct {
	Server  ServerConfig
	Tuwaiq  TuwaiqConfig
	Ledger  LedgerConfig
	CRM     CRMConfig
	AWS     AWSConfig
	HTTP    HTTPClientConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port    int
	RunMode string
}

type TuwaiqConfig struct {
	BaseURL      string
	Username     string
	Password     string
	UsernameType string
	Language     string
	Mock         bool
}

// LedgerConfig selects the ledger backend. An empty URL disables that ledger.
type LedgerConfig struct {
	Backend           string
	URL               string
	ConsultationURL   string
	Table             string
	ConsultationTable string
}

type CRMConfig struct {
	WebhookURL string
}

type AWSConfig struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	DynamoDBEndpoint string
}

type HTTPClientConfig struct {
	Timeout time.Duration
}

type LoggingConfig struct {
	Level string
}

// IsLambda reports whether the process should serve through the Lambda runtime.
func (c Config) IsLambda() bool {
	return strings.EqualFold(c.Server.RunMode, "lambda")
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads the configuration using the given viper instance.
func LoadFrom(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	runMode := v.GetString("RUN_MODE")
	if runMode == "" && v.GetString("AWS_LAMBDA_FUNCTION_NAME") != "" {
		runMode = "lambda"
	}

	cfg := Config{
		Server: ServerConfig{
			Port:    v.GetInt("PORT"),
			RunMode: runMode,
		},
		Tuwaiq: TuwaiqConfig{
			BaseURL:      strings.TrimRight(v.GetString("TUWAIQ_BASE_URL"), "/"),
			Username:     v.GetString("TUWAIQ_USERNAME"),
			Password:     v.GetString("TUWAIQ_PASSWORD"),
			UsernameType: v.GetString("TUWAIQ_USERNAME_TYPE"),
			Language:     v.GetString("TUWAIQ_LANGUAGE"),
			Mock:         isTruthy(v.GetString("PAYMENT_GATEWAY_MOCK")),
		},
		Ledger: LedgerConfig{
			Backend:           strings.ToLower(strings.TrimSpace(v.GetString("LEDGER_BACKEND"))),
			URL:               strings.TrimSpace(v.GetString("GSHEET_URL")),
			ConsultationURL:   strings.TrimSpace(v.GetString("GSHEET_CONSULTATION_URL")),
			Table:             v.GetString("LEDGER_TABLE"),
			ConsultationTable: v.GetString("LEDGER_CONSULTATION_TABLE"),
		},
		CRM: CRMConfig{
			WebhookURL: strings.TrimSpace(v.GetString("GHL_WEBHOOK_URL")),
		},
		AWS: AWSConfig{
			Region:           v.GetString("AWS_REGION"),
			AccessKeyID:      v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:  v.GetString("AWS_SECRET_ACCESS_KEY"),
			DynamoDBEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
		},
		HTTP: HTTPClientConfig{
			Timeout: v.GetDuration("HTTP_CLIENT_TIMEOUT"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("TUWAIQ_BASE_URL", "https://onboarding-prod.tuwaiqpay.com.sa/api/v1")
	v.SetDefault("TUWAIQ_USERNAME_TYPE", "MOBILE")
	v.SetDefault("TUWAIQ_LANGUAGE", "ar")
	v.SetDefault("LEDGER_BACKEND", LedgerBackendSheets)
	v.SetDefault("LEDGER_TABLE", "ledger")
	v.SetDefault("LEDGER_CONSULTATION_TABLE", "ledger_consultation")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "local")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "local")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
