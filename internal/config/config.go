package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

// IONConfig holds the fixed arguments of every InvokeIONAPIMethod call.
type IONConfig struct {
	SSO          string
	ServerID     string
	SuiteContext string
	ContentType  string
	Timeout      time.Duration
}

// TimeoutMillis renders the timeout the way the invoke method expects it.
func (c IONConfig) TimeoutMillis() string {
	return strconv.FormatInt(c.Timeout.Milliseconds(), 10)
}

type MongooseConfig struct {
	BaseURL string
	Token   string
	Site    string
}

type Config struct {
	IDOName           string
	IDOService        string
	ION               IONConfig
	Mongoose          MongooseConfig
	AuditLocation     *time.Location
	RefetchAfterWrite bool
	DBPath            string
	RabbitURL         string
	Port              string
}

func Load() (*Config, error) {
	timeoutMs, err := strconv.Atoi(getEnv("ION_TIMEOUT_MS", "10000"))
	if err != nil {
		return nil, fmt.Errorf("parse ION_TIMEOUT_MS: %w", err)
	}

	loc, err := time.LoadLocation(getEnv("AUDIT_TIMEZONE", "Asia/Tokyo"))
	if err != nil {
		return nil, fmt.Errorf("load AUDIT_TIMEZONE: %w", err)
	}

	refetch, err := strconv.ParseBool(getEnv("REFETCH_AFTER_WRITE", "false"))
	if err != nil {
		return nil, fmt.Errorf("parse REFETCH_AFTER_WRITE: %w", err)
	}

	cfg := &Config{
		IDOName:    getEnv("IDO_NAME", "ue_ADV_SLCoitems"),
		IDOService: getEnv("IDO_SERVICE", "IDORequestService"),
		ION: IONConfig{
			SSO:          getEnv("ION_SSO", "1"),
			ServerID:     getEnv("ION_SERVER_ID", "0"),
			SuiteContext: getEnv("ION_SUITE_CONTEXT", "CSI"),
			ContentType:  getEnv("ION_CONTENT_TYPE", "application/json"),
			Timeout:      time.Duration(timeoutMs) * time.Millisecond,
		},
		Mongoose: MongooseConfig{
			BaseURL: os.Getenv("MONGOOSE_BASE_URL"),
			Token:   os.Getenv("MONGOOSE_TOKEN"),
			Site:    os.Getenv("MONGOOSE_SITE"),
		},
		AuditLocation:     loc,
		RefetchAfterWrite: refetch,
		DBPath:            getEnv("DB_PATH", "./arrival.db"),
		RabbitURL:         os.Getenv("RABBIT_URL"),
		Port:              getEnv("PORT", "8080"),
	}

	if cfg.Mongoose.BaseURL == "" || cfg.Mongoose.Site == "" {
		return nil, fmt.Errorf("MONGOOSE_BASE_URL and MONGOOSE_SITE are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
