package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Auth modes selected once at startup. The middleware guarding protected
// routes is chosen from this value and never switched at runtime.
const (
	AuthModeLocal    = "local"    // username/password + signed cookie/bearer JWT
	AuthModeExternal = "external" // identity-provider token verification
	AuthModeDev      = "dev"      // fixed stand-in identity, local development only
)

// Storage drivers.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	AppEnv     string
	ServerPort string

	StorageDriver string
	DatabaseURL   string
	MigrationsDir string

	AuthMode       string
	JWTSecret      string
	JWTExpiryHours int

	IdentityAPIURL    string
	IdentitySecretKey string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	expiryHours, err := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "168"))
	if err != nil || expiryHours <= 0 {
		expiryHours = 168
	}

	return &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		StorageDriver: getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		DatabaseURL:   getEnv("DATABASE_URL", defaultDatabaseURL()),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		AuthMode:       getEnv("AUTH_MODE", AuthModeLocal),
		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiryHours: expiryHours,

		IdentityAPIURL:    getEnv("IDENTITY_API_URL", "https://api.clerk.com/v1"),
		IdentitySecretKey: getEnv("IDENTITY_SECRET_KEY", ""),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv != "production"
}

// defaultDatabaseURL assembles a DSN from the discrete DB_* variables so
// existing deployments that set them individually keep working.
func defaultDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "synergy_user"),
		getEnv("DB_PASSWORD", "synergy_pass"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "synergysphere_db"),
	)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
