package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
)

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	User     string
	Password string
}

type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Pass       string
	FromEmail  string
	AdminEmail string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type Config struct {
	Port           string
	Env            string
	Store          string
	DB             DBConfig
	Mongo          MongoConfig
	Redis          RedisConfig
	JWTSecret      string
	JWTExpire      time.Duration
	SMTP           SMTPConfig
	Cloudinary     CloudinaryConfig
	ClientURL      string
	RequestTimeout time.Duration
	RateLimit      int
	RateWindow     time.Duration
	LogLevel       string
	LogFile        string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

func GetEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	// số nguyên được hiểu là giây
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// Load nạp .env rồi đọc cấu hình từ biến môi trường
func Load() *Config {
	LoadEnv()

	env := strings.ToLower(GetEnv("ENV", "dev"))
	cfg := &Config{
		Port:  GetEnv("PORT", "8083"),
		Env:   env,
		Store: strings.ToLower(GetEnv("STORE", StorePostgres)),
		DB:    loadDBConfig(env),
		Mongo: MongoConfig{
			URI:      GetEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: GetEnv("MONGODB_DATABASE", "luxestay"),
		},
		Redis: RedisConfig{
			Addr:     GetEnv("REDIS_ADDR", ""),
			User:     GetEnv("REDIS_USER", ""),
			Password: GetEnv("REDIS_PASSWORD", ""),
		},
		JWTSecret: GetEnv("JWT_SECRET", ""),
		JWTExpire: time.Duration(getInt("JWT_EXPIRE_MINUTES", 10080)) * time.Minute,
		SMTP: SMTPConfig{
			Host:       GetEnv("SMTP_HOST", ""),
			Port:       getInt("SMTP_PORT", 587),
			User:       GetEnv("SMTP_USER", ""),
			Pass:       GetEnv("SMTP_PASS", ""),
			FromEmail:  GetEnv("FROM_EMAIL", "noreply@luxestay.com"),
			AdminEmail: GetEnv("ADMIN_EMAIL", ""),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: GetEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    GetEnv("CLOUDINARY_API_KEY", ""),
			APISecret: GetEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    GetEnv("CLOUDINARY_FOLDER", "luxestay/hotels"),
		},
		ClientURL:      GetEnv("CLIENT_URL", "http://localhost:5173"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		RateLimit:      getInt("RATE_LIMIT_MAX", 100),
		RateWindow:     getDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		LogFile:        GetEnv("LOG_FILE", ""),
	}

	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET is empty, using an insecure development secret")
		cfg.JWTSecret = "luxestay-dev-secret"
	}
	return cfg
}

// ConnectCloudinary trả về nil nếu chưa cấu hình Cloudinary
func ConnectCloudinary(cfg CloudinaryConfig) (*cloudinary.Cloudinary, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, nil
	}
	return cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
}
