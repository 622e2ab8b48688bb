package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageCSV      = "csv"
	StorageMySQL    = "mysql"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite3"
	StorageRedis    = "redis"
)

type Config struct {
	AppPort        string
	TrustedProxies []string
	CorsOrigins    []string

	StorageDriver string
	StoragePath   string

	DbDSN      string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	DbParams   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	HistoryLimit int

	LogLevel string
	LogFile  string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	driver := strings.ToLower(getEnv("STORAGE_DRIVER", StorageCSV))
	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		TrustedProxies: parseList(os.Getenv("TRUSTED_PROXIES")),
		CorsOrigins:    parseList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		StorageDriver:  driver,
		StoragePath:    getEnv("STORAGE_PATH", defaultStoragePath(driver)),
		DbDSN:          os.Getenv("DB_DSN"),
		DbHost:         getEnv("DB_HOST", "127.0.0.1"),
		DbPort:         getEnv("DB_PORT", defaultDbPort(driver)),
		DbUser:         getEnv("DB_USER", "tracker"),
		DbPassword:     getEnv("DB_PASSWORD", "tracker"),
		DbName:         getEnv("DB_NAME", "tracker"),
		DbParams:       getEnv("DB_PARAMS", defaultDbParams(driver)),
		RedisAddr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisKey:       getEnv("REDIS_KEY", "tasktracker:snapshot"),
		HistoryLimit:   getEnvInt("HISTORY_LIMIT", 0),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        os.Getenv("LOG_FILE"),
	}
}

// ForDriver returns a copy of c switched to driver. Driver dependent settings
// that the environment does not set explicitly get that driver's defaults.
func (c *Config) ForDriver(driver string) *Config {
	out := *c
	out.StorageDriver = strings.ToLower(driver)
	if _, set := os.LookupEnv("STORAGE_PATH"); !set {
		out.StoragePath = defaultStoragePath(out.StorageDriver)
	}
	if _, set := os.LookupEnv("DB_PORT"); !set {
		out.DbPort = defaultDbPort(out.StorageDriver)
	}
	if _, set := os.LookupEnv("DB_PARAMS"); !set {
		out.DbParams = defaultDbParams(out.StorageDriver)
	}
	return &out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func defaultStoragePath(driver string) string {
	switch driver {
	case StorageSQLite:
		return "data/tasks.db"
	default:
		return "data/tasks.csv"
	}
}

func defaultDbPort(driver string) string {
	if driver == StoragePostgres {
		return "5432"
	}
	return "3306"
}

func defaultDbParams(driver string) string {
	switch driver {
	case StorageMySQL:
		return "parseTime=true"
	case StoragePostgres:
		return "sslmode=disable"
	}
	return ""
}

func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}
