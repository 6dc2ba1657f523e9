package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"riskreport/internal/models"
)

// Storage engines.
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Env string

	// Server
	Port           string
	PipelineAPIKey string

	// Database
	DBEngine   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Risk figures
	KeyFigureWriteMode string

	// Scheduled report
	ReportSchedule     string
	ReportPortfolio    string
	ReportKeyFigures   []string
	ReportLookbackDays int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env: getEnv("ENV", "development"),

		Port:           getEnv("PORT", "8080"),
		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),

		DBEngine:   strings.ToLower(getEnv("DB_ENGINE", EngineSQLite)),
		DBPath:     getEnv("DB_PATH", "./db/risk.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "risk"),
		DBPassword: getEnv("DB_PASSWORD", "risk"),
		DBName:     getEnv("DB_NAME", "risk"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		KeyFigureWriteMode: strings.ToLower(getEnv("KEY_FIGURE_WRITE_MODE", "insert")),

		ReportSchedule:   getEnv("REPORT_SCHEDULE", ""),
		ReportPortfolio:  getEnv("REPORT_PORTFOLIO", "EQ_US"),
		ReportKeyFigures: SplitList(getEnv("REPORT_KEY_FIGURES", strings.Join(models.SupportedKeyFigures, ","))),
	}

	lookback := getEnv("REPORT_LOOKBACK_DAYS", "0")
	days, err := strconv.Atoi(lookback)
	if err != nil || days < 0 {
		return nil, fmt.Errorf("invalid REPORT_LOOKBACK_DAYS %q: want a non-negative integer", lookback)
	}
	config.ReportLookbackDays = days

	if err := config.validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

func (c *Config) validate() error {
	switch c.DBEngine {
	case EngineSQLite, EnginePostgres:
	default:
		return fmt.Errorf("invalid DB_ENGINE %q: want %s or %s", c.DBEngine, EngineSQLite, EnginePostgres)
	}
	switch c.KeyFigureWriteMode {
	case "insert", "upsert":
	default:
		return fmt.Errorf("invalid KEY_FIGURE_WRITE_MODE %q: want insert or upsert", c.KeyFigureWriteMode)
	}
	for _, kf := range c.ReportKeyFigures {
		if !models.IsSupportedKeyFigure(kf) {
			return fmt.Errorf("invalid REPORT_KEY_FIGURES: key figure %q is not supported", kf)
		}
	}
	return nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SplitList splits a comma-separated list, trimming blanks. Key figure names
// contain commas only inside parentheses, so those are kept together.
func SplitList(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	flush := func(end int) {
		if item := strings.TrimSpace(s[start:end]); item != "" {
			out = append(out, item)
		}
	}
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(s))
	return out
}
