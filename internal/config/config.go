package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// BudgetSpentMode selects how budget spent amounts are reported.
type BudgetSpentMode string

const (
	// SpentModeStored returns the stored spent_amount counter, maintained
	// as expense transactions are recorded.
	SpentModeStored BudgetSpentMode = "stored"
	// SpentModeLive recomputes spent amounts from transactions at read time.
	SpentModeLive BudgetSpentMode = "live"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Budget: how spent amounts are reported (stored|live).
	BudgetSpentMode BudgetSpentMode

	// Net worth: whether goal current amounts are added on top of account
	// balances. Goal deposits also sit in the goal's savings account, so
	// true double-counts them; kept on by default to match the original
	// dashboard figure.
	NetWorthIncludeGoals bool
}

var appConfig *Config

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "meubolso"),
		DBPassword: getEnv("DB_PASSWORD", "meubolso"),
		DBName:     getEnv("DB_NAME", "meubolso"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		NetWorthIncludeGoals: getEnv("NET_WORTH_INCLUDE_GOALS", "true") != "false",
	}

	switch mode := getEnv("BUDGET_SPENT_MODE", string(SpentModeStored)); BudgetSpentMode(mode) {
	case SpentModeStored, SpentModeLive:
		config.BudgetSpentMode = BudgetSpentMode(mode)
	default:
		log.Printf("Warning: invalid BUDGET_SPENT_MODE value '%s', falling back to stored\n", mode)
		config.BudgetSpentMode = SpentModeStored
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration.
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

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
