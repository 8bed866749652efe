package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	Server    ServerConfig
	CORS      CORSConfig
	Assets    AssetsConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Database       string
	ConnectTimeout time.Duration
}

type JWTConfig struct {
	AccessSecret       string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	SweepInterval      time.Duration
}

type ServerConfig struct {
	Port           string
	GinMode        string
	MaxUploadBytes int64
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AssetsConfig selects where uploaded files (images, PDFs) are stored.
// Backend is either "github" or "s3".
type AssetsConfig struct {
	Backend string
	GitHub  GitHubConfig
	S3      S3Config
}

type GitHubConfig struct {
	Token  string
	Owner  string
	Repo   string
	Folder string
	Branch string
}

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// AdminConfig holds the credentials of the user created on first start.
// Bootstrap is skipped when either field is empty.
type AdminConfig struct {
	Username string
	Password string
}

type RateLimitConfig struct {
	AuthRequestsPerMinute int
}

type TelemetryConfig struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "3306"),
			User:           getEnv("DB_USER", "root"),
			Password:       getEnv("DB_PASSWORD", ""),
			Database:       getEnv("DB_NAME", "delit"),
			ConnectTimeout: parseDuration(getEnv("DB_CONNECT_TIMEOUT", "50s"), 50*time.Second),
		},
		JWT: JWTConfig{
			AccessSecret:       getEnv("JWT_ACCESS_SECRET", "your-access-secret-key"),
			RefreshSecret:      getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-key"),
			AccessTokenExpiry:  parseDuration(getEnv("ACCESS_TOKEN_EXPIRY", "30m"), 30*time.Minute),
			RefreshTokenExpiry: parseDuration(getEnv("REFRESH_TOKEN_EXPIRY", "168h"), 7*24*time.Hour),
			SweepInterval:      parseDuration(getEnv("TOKEN_SWEEP_INTERVAL", "1h"), time.Hour),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			GinMode:        getEnv("GIN_MODE", "debug"),
			MaxUploadBytes: parseInt64(getEnv("MAX_UPLOAD_BYTES", "20971520"), 20*1024*1024),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList(getEnv("ALLOWED_ORIGINS", "*")),
		},
		Assets: AssetsConfig{
			Backend: strings.ToLower(getEnv("ASSET_BACKEND", "github")),
			GitHub: GitHubConfig{
				Token:  getEnv("GITHUB_TOKEN", ""),
				Owner:  getEnv("GITHUB_REPO_OWNER", ""),
				Repo:   getEnv("GITHUB_REPO_NAME", ""),
				Folder: getEnv("GITHUB_FOLDER_PATH", "samples"),
				Branch: getEnv("GITHUB_BRANCH", "main"),
			},
			S3: S3Config{
				Bucket:        getEnv("S3_BUCKET", "delit"),
				Region:        getEnv("S3_REGION", "us-east-1"),
				Endpoint:      getEnv("S3_ENDPOINT", ""),
				AccessKey:     getEnv("S3_ACCESS_KEY", ""),
				SecretKey:     getEnv("S3_SECRET_KEY", ""),
				PublicBaseURL: strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
			},
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		RateLimit: RateLimitConfig{
			AuthRequestsPerMinute: int(parseInt64(getEnv("AUTH_RATE_LIMIT_PER_MINUTE", "30"), 30)),
		},
		Telemetry: TelemetryConfig{
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    getEnv("OTEL_EXPORTER_OTLP_INSECURE", "true") == "true",
			ServiceName: getEnv("SERVICE_NAME", "delit-api"),
		},
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using default\n", s)
		return fallback
	}
	return duration
}

func parseInt64(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Printf("Warning: Invalid integer '%s', using default\n", s)
		return fallback
	}
	return n
}

func parseList(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
