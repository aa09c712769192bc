package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Search SearchConfig `yaml:"search"`
}

// SearchConfig holds the ranking engine tuning knobs. The defaults are the
// empirically chosen values the ranking was calibrated with; they are exposed
// here instead of being buried as constants in the engine.
type SearchConfig struct {
	PageSize       int `yaml:"page_size" env:"SEARCH_PAGE_SIZE"`
	MinQueryLength int `yaml:"min_query_length" env:"SEARCH_MIN_QUERY_LENGTH"`

	Weights struct {
		Code        float64 `yaml:"code" env:"SEARCH_WEIGHT_CODE"`
		Content     float64 `yaml:"content" env:"SEARCH_WEIGHT_CONTENT"`
		Instructor  float64 `yaml:"instructor" env:"SEARCH_WEIGHT_INSTRUCTOR"`
		SubjectName float64 `yaml:"subject_name" env:"SEARCH_WEIGHT_SUBJECT_NAME"`
		Fallback    float64 `yaml:"fallback" env:"SEARCH_WEIGHT_FALLBACK"`
	} `yaml:"weights"`

	Instructor struct {
		FullNameWeight  float64 `yaml:"full_name_weight" env:"SEARCH_INSTR_FULL_NAME_WEIGHT"`
		LastNameWeight  float64 `yaml:"last_name_weight" env:"SEARCH_INSTR_LAST_NAME_WEIGHT"`
		FirstNameWeight float64 `yaml:"first_name_weight" env:"SEARCH_INSTR_FIRST_NAME_WEIGHT"`
		TrustThreshold  float64 `yaml:"trust_threshold" env:"SEARCH_INSTR_TRUST_THRESHOLD"`
		KeepRatio       float64 `yaml:"keep_ratio" env:"SEARCH_INSTR_KEEP_RATIO"`
		AssistantFactor float64 `yaml:"assistant_factor" env:"SEARCH_INSTR_ASSISTANT_FACTOR"`
		BestWeight      float64 `yaml:"best_weight" env:"SEARCH_INSTR_BEST_WEIGHT"`
		AvgWeight       float64 `yaml:"avg_weight" env:"SEARCH_INSTR_AVG_WEIGHT"`
		CrowdPenalty    float64 `yaml:"crowd_penalty" env:"SEARCH_INSTR_CROWD_PENALTY"`
	} `yaml:"instructor"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "coursehub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Search.PageSize = 10
	config.Search.MinQueryLength = 4

	config.Search.Weights.Code = 7
	config.Search.Weights.Content = 6
	config.Search.Weights.Instructor = 4
	config.Search.Weights.SubjectName = 3
	config.Search.Weights.Fallback = 1

	config.Search.Instructor.FullNameWeight = 0.55
	config.Search.Instructor.LastNameWeight = 0.95
	config.Search.Instructor.FirstNameWeight = 0.15
	config.Search.Instructor.TrustThreshold = 0.8
	config.Search.Instructor.KeepRatio = 0.6
	config.Search.Instructor.AssistantFactor = 0.5
	config.Search.Instructor.BestWeight = 0.97
	config.Search.Instructor.AvgWeight = 0.03
	config.Search.Instructor.CrowdPenalty = 0.05
}

// validateConfig performs basic sanity checks on the loaded configuration
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	mode := strings.ToLower(config.Server.Mode)
	if mode != "development" && mode != "production" && mode != "test" {
		return fmt.Errorf("server mode must be one of development, production, test")
	}

	if config.Database.Host == "" || config.Database.DBName == "" {
		return fmt.Errorf("database host and name are required")
	}

	if config.Search.PageSize <= 0 {
		return fmt.Errorf("search page size must be positive")
	}
	if config.Search.MinQueryLength < 0 {
		return fmt.Errorf("search min query length cannot be negative")
	}

	return nil
}

// GetPostgresConnectionString builds a connection string for pgx
func (c *Config) GetPostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}
