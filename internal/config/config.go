package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/TwinDots/tdcardsave/internal/gateway"
	"github.com/TwinDots/tdcardsave/internal/model"
)

// The production gateway entry points, tried in priority order.
const defaultEndpoints = "https://gw1.cardsaveonlinepayments.com:4430,100,2;" +
	"https://gw2.cardsaveonlinepayments.com:4430,200,2;" +
	"https://gw3.cardsaveonlinepayments.com:4430,300,2"

const maxPasswordLength = 15

type Config struct {
	Port        string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	AutoMigrate bool
	GinMode     string

	MerchantID        string
	MerchantPassword  string
	HashMethod        string
	SharedKey         string
	TransactionType   string
	PaidOrderStatusID int

	GatewayEndpoints string
	GatewayTimeout   time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "tdcardsave"),
		DBPassword:  getEnv("DB_PASSWORD", "tdcardsave_secret"),
		DBName:      getEnv("DB_NAME", "tdcardsave"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		AutoMigrate: getEnv("AUTO_MIGRATE", "false") == "true",
		GinMode:     getEnv("GIN_MODE", "debug"),

		MerchantID:        getEnv("MERCHANT_ID", ""),
		MerchantPassword:  getEnv("MERCHANT_PASSWORD", ""),
		HashMethod:        getEnv("HASH_METHOD", "SHA1"),
		SharedKey:         getEnv("SHARED_KEY", ""),
		TransactionType:   getEnv("TRANSACTION_TYPE", "SALE"),
		PaidOrderStatusID: getEnvInt("PAID_ORDER_STATUS_ID", 2),

		GatewayEndpoints: getEnv("GATEWAY_ENDPOINTS", defaultEndpoints),
		GatewayTimeout:   getEnvDuration("GATEWAY_TIMEOUT", 30*time.Second),
	}
}

// Validate applies the configuration-time rules: credentials present, the
// gateway's password length limit, known hash method and transaction type,
// and a parseable endpoint list.
func (c *Config) Validate() error {
	if c.MerchantID == "" {
		return fmt.Errorf("MERCHANT_ID is required")
	}
	if c.MerchantPassword == "" {
		return fmt.Errorf("MERCHANT_PASSWORD is required")
	}
	if len(c.MerchantPassword) > maxPasswordLength {
		return fmt.Errorf("merchant password must be %d characters or shorter", maxPasswordLength)
	}
	if _, err := model.ParseHashMethod(c.HashMethod); err != nil {
		return err
	}
	if _, err := model.ParseTransactionKind(c.TransactionType); err != nil {
		return err
	}
	if _, err := c.Endpoints(); err != nil {
		return err
	}
	return nil
}

// Credentials builds the merchant credentials from validated config.
func (c *Config) Credentials() model.MerchantCredentials {
	method, _ := model.ParseHashMethod(c.HashMethod)
	return model.MerchantCredentials{
		MerchantID: c.MerchantID,
		Password:   c.MerchantPassword,
		HashMethod: method,
		SharedKey:  c.SharedKey,
	}
}

// Policy builds the transaction policy from validated config.
func (c *Config) Policy() model.TransactionPolicy {
	policy := model.DefaultPolicy()
	if kind, err := model.ParseTransactionKind(c.TransactionType); err == nil {
		policy.Kind = kind
	}
	policy.PaidOrderStatusID = c.PaidOrderStatusID
	return policy
}

// Endpoints parses the endpoint list. The format is semicolon-separated
// "baseURL,priority,retries" triples.
func (c *Config) Endpoints() (*gateway.EndpointList, error) {
	list := gateway.NewEndpointList()
	for _, spec := range strings.Split(c.GatewayEndpoints, ";") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		parts := strings.Split(spec, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid gateway endpoint spec %q (want baseURL,priority,retries)", spec)
		}
		priority, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid priority in endpoint spec %q: %w", spec, err)
		}
		retries, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("invalid retry count in endpoint spec %q: %w", spec, err)
		}
		list.Add(strings.TrimSpace(parts[0]), priority, retries)
	}
	if list.Len() == 0 {
		return nil, fmt.Errorf("at least one gateway endpoint is required")
	}
	return list, nil
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
