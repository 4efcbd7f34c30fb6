package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yeremiapane/cafe-ordering/utils"
)

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Auth     AuthConfig
	Order    OrderConfig
	Hub      HubConfig
	Notify   NotifyConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	GinMode         string
	CORSOrigin      string
	RateLimit       int
	ShutdownTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type AuthConfig struct {
	SecurityKey string
	SessionTTL  time.Duration
	AdminTTL    time.Duration
}

type OrderConfig struct {
	Location         *time.Location
	TransitionPolicy string
}

type HubConfig struct {
	RetryDelay       time.Duration
	RetryMaxAttempts int
}

type NotifyConfig struct {
	AMQPURL  string
	Exchange string
}

// Load -> baca .env (opsional) lalu environment variable lewat viper
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5001")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("RATE_LIMIT_PER_SECOND", 50)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "cafe")

	v.SetDefault("SECURITY_KEY", "")
	// 360000 detik, sama dengan masa berlaku sesi meja sebelumnya
	v.SetDefault("SESSION_TTL", "100h")
	v.SetDefault("ADMIN_TOKEN_TTL", "24h")

	v.SetDefault("CAFE_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("ORDER_TRANSITION_POLICY", "whitelist")

	v.SetDefault("WS_RETRY_DELAY", "5s")
	v.SetDefault("WS_RETRY_MAX", 3)

	v.SetDefault("AMQP_URL", "")
	v.SetDefault("NOTIFY_EXCHANGE", "notifications_fanout")

	v.SetDefault("LOG_LEVEL", "info")
}

func fromViper(v *viper.Viper) (*Config, error) {
	loc, err := time.LoadLocation(v.GetString("CAFE_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid CAFE_TIMEZONE: %w", err)
	}

	policy := v.GetString("ORDER_TRANSITION_POLICY")
	if policy != "whitelist" && policy != "forward" {
		return nil, fmt.Errorf("invalid ORDER_TRANSITION_POLICY %q", policy)
	}

	secret := v.GetString("SECURITY_KEY")
	if secret == "" {
		return nil, fmt.Errorf("SECURITY_KEY is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			GinMode:         v.GetString("GIN_MODE"),
			CORSOrigin:      v.GetString("CORS_ORIGIN"),
			RateLimit:       v.GetInt("RATE_LIMIT_PER_SECOND"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			Name:     v.GetString("DB_NAME"),
		},
		Auth: AuthConfig{
			SecurityKey: secret,
			SessionTTL:  v.GetDuration("SESSION_TTL"),
			AdminTTL:    v.GetDuration("ADMIN_TOKEN_TTL"),
		},
		Order: OrderConfig{
			Location:         loc,
			TransitionPolicy: policy,
		},
		Hub: HubConfig{
			RetryDelay:       v.GetDuration("WS_RETRY_DELAY"),
			RetryMaxAttempts: v.GetInt("WS_RETRY_MAX"),
		},
		Notify: NotifyConfig{
			AMQPURL:  v.GetString("AMQP_URL"),
			Exchange: v.GetString("NOTIFY_EXCHANGE"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}
	return cfg, nil
}

func (c *DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User, c.Password, c.Host, c.Port, c.Name)
}
