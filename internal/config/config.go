package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/akarpati/unimail/internal/models"
)

type Config struct {
	Environment string
	Port        string
	FrontendURL string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	// ResultLimit caps the merged feed length (0 disables the cap).
	ResultLimit int
	// ListLimit caps how many refs a single partition listing returns.
	ListLimit int
	// DetailConcurrency bounds concurrent detail retrievals per account.
	DetailConcurrency int
	// CacheTTL bounds the staleness of a served feed (0 disables caching).
	CacheTTL time.Duration

	Partitions   []models.PartitionQuery
	IMAPAccounts []IMAPAccount
}

// IMAPAccount is one password-authenticated account declared in the config
// file and registered at startup.
type IMAPAccount struct {
	Address  string `yaml:"address"`
	Host     string `yaml:"host"` // host:port
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// DefaultPartitions returns the partition set the feed has always queried:
// inbox, spam and the four Gmail category tabs.
func DefaultPartitions() []models.PartitionQuery {
	return []models.PartitionQuery{
		{Selector: "in:inbox", Tag: "INBOX"},
		{Selector: "in:spam", Tag: "SPAM"},
		{Selector: "category:promotions", Tag: "PROMOTIONS"},
		{Selector: "category:social", Tag: "SOCIAL"},
		{Selector: "category:updates", Tag: "UPDATES"},
		{Selector: "category:forums", Tag: "FORUMS"},
	}
}

func NewConfig() (*Config, error) {
	env := os.Getenv("UNIMAIL_ENV")
	if env == "" {
		env = "development"
	}

	if env == "development" {
		if err := godotenv.Load(); err != nil {
			fmt.Println("Warning: .env file not found, using environment variables")
		}
	}

	config := &Config{
		Environment:        env,
		Port:               getEnvOrDefault("PORT", "8080"),
		FrontendURL:        getEnvOrDefault("FRONTEND_URL", "http://localhost:3001"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
		ResultLimit:        getEnvIntOrDefault("UNIMAIL_RESULT_LIMIT", 100),
		ListLimit:          getEnvIntOrDefault("UNIMAIL_LIST_LIMIT", 30),
		DetailConcurrency:  getEnvIntOrDefault("UNIMAIL_DETAIL_CONCURRENCY", 8),
		CacheTTL:           getEnvDurationOrDefault("UNIMAIL_CACHE_TTL", 0),
		Partitions:         DefaultPartitions(),
	}

	if path := os.Getenv("UNIMAIL_CONFIG_FILE"); path != "" {
		if err := config.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.GoogleClientID == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID is required")
	}

	if c.GoogleClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_SECRET is required")
	}

	if c.GoogleRedirectURI == "" {
		return fmt.Errorf("GOOGLE_REDIRECT_URI is required")
	}

	for _, q := range c.Partitions {
		if q.Tag == "" {
			return fmt.Errorf("partition entries need a tag")
		}
	}

	for _, acc := range c.IMAPAccounts {
		if acc.Address == "" || acc.Host == "" || acc.Username == "" || acc.Password == "" {
			return fmt.Errorf("imap account entries need address, host, username and password")
		}
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
