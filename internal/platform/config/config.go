package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	NotifyNone     = "none"
	NotifyRabbitMQ = "rabbitmq"
	NotifyKafka    = "kafka"
)

type Config struct {
	AppName  string         `yaml:"app_name"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Redis    RedisConfig    `yaml:"redis"`
	Notify   NotifyConfig   `yaml:"notify"`
	Booking  BookingConfig  `yaml:"booking"`
}

type HTTPConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

func (h HTTPConfig) Addr() string {
	return ":" + strings.TrimPrefix(h.Port, ":")
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DatabaseConfig struct {
	// Vacío => repos in-memory.
	DSN     string `yaml:"dsn"`
	Migrate bool   `yaml:"migrate"`
}

type AuthConfig struct {
	// Vacío => modo dev (headers X-Debug-*).
	JWTSecret  string   `yaml:"jwt_secret"`
	AdminRoles []string `yaml:"admin_roles"`
}

type RedisConfig struct {
	// Vacío => sin cache.
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type NotifyConfig struct {
	Driver       string   `yaml:"driver"` // none | rabbitmq | kafka
	AMQPURL      string   `yaml:"amqp_url"`
	AMQPQueue    string   `yaml:"amqp_queue"`
	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`
}

type BookingConfig struct {
	SeedStatuses bool   `yaml:"seed_statuses"`
	Timezone     string `yaml:"timezone"` // IANA; vacío => hora local del servidor
}

// Location resuelve el timezone usado para calcular "hoy".
func (b BookingConfig) Location() (*time.Location, error) {
	tz := strings.TrimSpace(b.Timezone)
	if tz == "" {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

func Default() Config {
	return Config{
		AppName: "pet-boarding",
		HTTP: HTTPConfig{
			Port:         "8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Log:      LogConfig{Level: "info", Format: "text"},
		Database: DatabaseConfig{Migrate: true},
		Auth:     AuthConfig{AdminRoles: []string{"admin", "Administrador"}},
		Redis:    RedisConfig{TTL: 5 * time.Minute},
		Notify: NotifyConfig{
			Driver:     NotifyNone,
			AMQPQueue:  "reservations.events",
			KafkaTopic: "reservations.events",
		},
		Booking: BookingConfig{SeedStatuses: true},
	}
}

// Load arma la config en capas: defaults -> archivo YAML (opcional) -> env.
// Si existe un .env en el cwd se carga antes sin pisar variables ya definidas.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if strings.TrimSpace(path) == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// sin archivo: solo defaults + env
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Notify.Driver {
	case NotifyNone, NotifyRabbitMQ, NotifyKafka:
	default:
		return fmt.Errorf("config: unknown notify driver %q", c.Notify.Driver)
	}
	if c.Notify.Driver == NotifyRabbitMQ && strings.TrimSpace(c.Notify.AMQPURL) == "" {
		return errors.New("config: notify.amqp_url required for rabbitmq driver")
	}
	if c.Notify.Driver == NotifyKafka && len(c.Notify.KafkaBrokers) == 0 {
		return errors.New("config: notify.kafka_brokers required for kafka driver")
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		return errors.New("config: http timeouts must be positive")
	}
	if strings.TrimSpace(c.HTTP.Port) == "" {
		return errors.New("config: http.port required")
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("config: invalid timezone: %w", err)
	}
	return nil
}

func applyEnv(c *Config) error {
	setString("APP_NAME", &c.AppName)
	setString("PORT", &c.HTTP.Port)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FORMAT", &c.Log.Format)
	setString("DB_DSN", &c.Database.DSN)
	setString("JWT_SECRET", &c.Auth.JWTSecret)
	setList("ADMIN_ROLES", &c.Auth.AdminRoles)
	setString("REDIS_ADDR", &c.Redis.Addr)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setString("NOTIFY_DRIVER", &c.Notify.Driver)
	setString("AMQP_URL", &c.Notify.AMQPURL)
	setString("AMQP_QUEUE", &c.Notify.AMQPQueue)
	setList("KAFKA_BROKERS", &c.Notify.KafkaBrokers)
	setString("KAFKA_TOPIC", &c.Notify.KafkaTopic)
	setString("TIMEZONE", &c.Booking.Timezone)

	if v, ok := lookup("REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid REDIS_DB %q", v)
		}
		c.Redis.DB = n
	}
	if v, ok := lookup("SEED_STATUSES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid SEED_STATUSES %q", v)
		}
		c.Booking.SeedStatuses = b
	}
	if v, ok := lookup("DB_MIGRATE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid DB_MIGRATE %q", v)
		}
		c.Database.Migrate = b
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func setString(key string, dst *string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

// setList acepta CSV: "a,b,c".
func setList(key string, dst *[]string) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	out := make([]string, 0)
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}
