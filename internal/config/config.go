package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	// ApprovalSLA is how long a single approval step may stay undecided
	// before the request is reported as overdue.
	ApprovalSLA time.Duration

	// Per-request-type caps on approval chain length.
	MaxChainStepsLeave    int
	MaxChainStepsOvertime int
	MaxChainStepsLoan     int

	// Cron spec for the overdue digest job. Empty disables the job.
	OverdueDigestSchedule string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "go-hrms"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "go-hrms"),

		ApprovalSLA:           time.Duration(getEnvInt("APPROVAL_SLA_HOURS", 48)) * time.Hour,
		MaxChainStepsLeave:    getEnvInt("MAX_CHAIN_STEPS_LEAVE", 2),
		MaxChainStepsOvertime: getEnvInt("MAX_CHAIN_STEPS_OVERTIME", 2),
		MaxChainStepsLoan:     getEnvInt("MAX_CHAIN_STEPS_LOAN", 3),

		OverdueDigestSchedule: getEnv("OVERDUE_DIGEST_SCHEDULE", "0 8 * * *"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
