package config

import (
	"os"
	"strconv"
	"time"

	"pass-platform/internal/services/ecrm"
	"pass-platform/internal/services/provider/myameria"
	"pass-platform/internal/services/provider/vpos"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration (app-level status broadcasts)
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// Payment provider configuration
	VPOSConfig     vpos.Config
	MyAmeriaConfig myameria.Config

	// Fiscal bridge configuration
	ECRMConfig ecrm.Config
	DefaultCRN int

	// Wallet pass web service
	PassServicePort string
	PassBaseURL     string

	// Timeout configuration
	PaymentTimeout    time.Duration
	TransitionLockTTL time.Duration

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		// VPOS
		VPOSConfig: vpos.Config{
			BaseURL:  getEnv("VPOS_BASE_URL", "https://services.ameriabank.am/VPOS"),
			ClientID: getEnv("VPOS_CLIENT_ID", ""),
			Username: getEnv("VPOS_USERNAME", ""),
			Password: getEnv("VPOS_PASSWORD", ""),
			BackURL:  getEnv("VPOS_BACK_URL", ""),
		},

		// MyAmeria
		MyAmeriaConfig: myameria.Config{
			BaseURL:     getEnv("MYAMERIA_BASE_URL", ""),
			MerchantID:  getEnv("MYAMERIA_MERCHANT_ID", ""),
			APIKey:      getEnv("MYAMERIA_API_KEY", ""),
			PNSubKey:    getEnv("MYAMERIA_PN_SUBKEY", ""),
			PNSubSecret: getEnv("MYAMERIA_PN_SUBSECRET", ""),
			PNUUID:      getEnv("MYAMERIA_PN_UUID", ""),
			PNChannel:   getEnv("MYAMERIA_PN_CHANNEL", ""),
			PNCipherKey: getEnv("MYAMERIA_PN_CIPHERKEY", ""),
		},

		// ECRM
		ECRMConfig: ecrm.Config{
			BaseURL: getEnv("ECRM_BASE_URL", "http://localhost:5050"),
			Token:   getEnv("ECRM_TOKEN", ""),
		},
		DefaultCRN: getEnvAsInt("ECRM_DEFAULT_CRN", 0),

		// Wallet pass web service
		PassServicePort: getEnv("PASS_SERVICE_PORT", "8091"),
		PassBaseURL:     getEnv("PASS_BASE_URL", "http://localhost:8091"),

		// Timeouts
		PaymentTimeout:    getEnvAsDuration("PAYMENT_TIMEOUT", "15m"),
		TransitionLockTTL: getEnvAsDuration("TRANSITION_LOCK_TTL", "30s"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
