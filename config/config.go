package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Order    OrderConfig
	Flags    FlagCacheConfig
	Fault    FaultConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type OrderConfig struct {
	// ExpireAfter 訂單保留時間，超過後由清理器取消
	ExpireAfter time.Duration
	// LockTimeout 行鎖等待上限，避免慢客戶端卡住整個票種
	LockTimeout   time.Duration
	SweepInterval time.Duration
	SweepBatch    int
}

type FlagCacheConfig struct {
	TTL time.Duration
}

type FaultConfig struct {
	Enabled bool
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env 不存在時沿用環境變數即可
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:   ServerConfig{Port: getEnv("PORT", "8080")},
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenTTL:  getDuration("JWT_TTL", 7*24*time.Hour),
		},
		Order: OrderConfig{
			ExpireAfter:   getDuration("ORDER_EXPIRE_AFTER", 15*time.Minute),
			LockTimeout:   getDuration("ORDER_LOCK_TIMEOUT", 3*time.Second),
			SweepInterval: getDuration("ORDER_SWEEP_INTERVAL", time.Minute),
			SweepBatch:    getInt("ORDER_SWEEP_BATCH", 100),
		},
		Flags: FlagCacheConfig{
			TTL: getDuration("FLAG_CACHE_TTL", time.Minute),
		},
		Fault: FaultConfig{
			Enabled: getEnv("ENABLE_FAULT_ENDPOINTS", "false") == "true",
		},
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Port: "8081"},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Auth: AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
		},
		Order: OrderConfig{
			ExpireAfter:   15 * time.Minute,
			LockTimeout:   3 * time.Second,
			SweepInterval: time.Minute,
			SweepBatch:    100,
		},
		Flags: FlagCacheConfig{TTL: time.Minute},
		Fault: FaultConfig{Enabled: true},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
