package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	Debug      bool

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret          string
	JWTExpirationHours time.Duration

	// Seed credentials for the fallback in-memory user store.
	AdminUsername string
	AdminPassword string

	// Directory for the JSON state snapshot (spots, debts, history).
	DataDir string

	// Billable hours per elapsed wall-clock hour. 1.0 is real time; demo
	// installations set 60 so one real minute bills as one hour.
	TimeScale float64
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env file: %v", err)
	}

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	jwtExpHours, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	timeScale, err := strconv.ParseFloat(getEnv("TIME_SCALE", "1.0"), 64)
	if err != nil || timeScale <= 0 {
		timeScale = 1.0
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Debug:      getEnv("DEBUG", "false") == "true",

		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "parking"),
		DBPassword: getEnv("DB_PASSWORD", "parking"),
		DBName:     getEnv("DB_NAME", "parking_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpirationHours: time.Duration(jwtExpHours) * time.Hour,

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "CANDU"),

		DataDir: getEnv("DATA_DIR", "data"),

		TimeScale: timeScale,
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
