package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	RestCountriesAPIBaseURL  string        `yaml:"restcountries_api_base_url"`
	RestCountriesMaxRequests int           `yaml:"restcountries_max_requests"`
	RestCountriesPerDuration time.Duration `yaml:"restcountries_per_duration"`
	HTTPTimeout              time.Duration `yaml:"http_timeout"`

	MongoURI                    string `yaml:"mongo_uri"`
	MongoUser                   string `yaml:"mongo_user"`
	MongoPass                   string `yaml:"mongo_pass"`
	MongoAuthDB                 string `yaml:"mongo_auth_db"`
	DBCountries                 string `yaml:"db_countries_name"`
	CollectionUsers             string `yaml:"collection_users"`
	CollectionFeatured          string `yaml:"collection_featured"`
	CollectionMigrationsHistory string `yaml:"collection_migrations_history"`

	SessionJWTSecret string `yaml:"session_jwt_secret"`

	FeaturedCount int    `yaml:"featured_count"`
	FeaturedCron  string `yaml:"featured_cron"`
	WorkerCount   int    `yaml:"worker_count"`

	LogLevel string `yaml:"log_level"`
}

// Load reads the .env file and loads the configuration. When CONFIG_FILE is
// set the YAML file it names is used instead of individual variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return LoadFile(path)
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return cfg, nil
}

// LoadFile reads a YAML config, expanding ${VAR} references from the environment.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

func fromEnv() (*Config, error) {
	maxRequests, err := intEnv("RESTCOUNTRIES_MAX_REQUESTS")
	if err != nil {
		return nil, err
	}
	perDuration, err := durationEnv("RESTCOUNTRIES_PER_DURATION")
	if err != nil {
		return nil, err
	}
	timeout, err := durationEnv("HTTP_TIMEOUT")
	if err != nil {
		return nil, err
	}
	featuredCount, err := intEnv("FEATURED_COUNT")
	if err != nil {
		return nil, err
	}
	workers, err := intEnv("WORKER_COUNT")
	if err != nil {
		return nil, err
	}

	return &Config{
		RestCountriesAPIBaseURL:     os.Getenv("RESTCOUNTRIES_API_BASE_URL"),
		RestCountriesMaxRequests:    maxRequests,
		RestCountriesPerDuration:    perDuration,
		HTTPTimeout:                 timeout,
		MongoURI:                    getMongoURI(),
		MongoUser:                   os.Getenv("MONGO_USER"),
		MongoPass:                   os.Getenv("MONGO_PASS"),
		MongoAuthDB:                 os.Getenv("MONGO_AUTH_DB"),
		DBCountries:                 os.Getenv("DB_COUNTRIES_NAME"),
		CollectionUsers:             os.Getenv("COLLECTION_USERS"),
		CollectionFeatured:          os.Getenv("COLLECTION_FEATURED"),
		CollectionMigrationsHistory: os.Getenv("COLLECTION_MIGRATIONS_HISTORY"),
		SessionJWTSecret:            os.Getenv("SESSION_JWT_SECRET"),
		FeaturedCount:               featuredCount,
		FeaturedCron:                os.Getenv("FEATURED_CRON"),
		WorkerCount:                 workers,
		LogLevel:                    os.Getenv("LOG_LEVEL"),
	}, nil
}

// getMongoURI prefers MONGO_URI and otherwise builds one from host and port.
// Credentials are applied separately when connecting.
func getMongoURI() string {
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		return uri
	}
	host := os.Getenv("MONGO_HOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("MONGO_PORT")
	if port == "" {
		port = "27017"
	}
	return "mongodb://" + host + ":" + port
}

func intEnv(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func (c *Config) setDefaults() {
	if c.RestCountriesAPIBaseURL == "" {
		c.RestCountriesAPIBaseURL = "https://restcountries.com/v3.1"
	}
	if c.RestCountriesMaxRequests == 0 {
		c.RestCountriesMaxRequests = 60
	}
	if c.RestCountriesPerDuration == 0 {
		c.RestCountriesPerDuration = time.Minute
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = 10 * time.Second
	}
	if c.MongoAuthDB == "" {
		c.MongoAuthDB = "admin"
	}
	if c.DBCountries == "" {
		c.DBCountries = "countries"
	}
	if c.CollectionUsers == "" {
		c.CollectionUsers = "users"
	}
	if c.CollectionFeatured == "" {
		c.CollectionFeatured = "featured"
	}
	if c.CollectionMigrationsHistory == "" {
		c.CollectionMigrationsHistory = "migrations_history"
	}
	if c.FeaturedCount == 0 {
		c.FeaturedCount = 6
	}
	if c.FeaturedCron == "" {
		c.FeaturedCron = "0 1 * * *"
	}
	if c.WorkerCount == 0 {
		c.WorkerCount = 5
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
