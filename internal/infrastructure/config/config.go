package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	GRPCServer GRPCServer
	Prometheus Prometheus
	Storage    Storage
	Database   Database
	Redis      Redis
	Webhook    Webhook
	Events     Events
}

type HTTPServer struct {
	Address           string
	Port              int
	ReadHeaderTimeout time.Duration
	MaxBodyBytes      int64
}

type GRPCServer struct {
	Enabled bool
	Address string
	Port    int
}

type Prometheus struct {
	Enabled bool
	Address string
	Port    int
}

type Storage struct {
	Driver            string
	DataDir           string
	PostsFile         string
	WebhookConfigFile string
}

type Database struct {
	Username string
	Password string
	Host     string
	Port     string
	DbName   string
}

type Redis struct {
	Address   string
	Port      int
	Password  string
	DB        int
	PoolSize  int
	KeyPrefix string
}

type Webhook struct {
	Timeout time.Duration
	Source  string
	Secret  string
}

type Events struct {
	BufferSize int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("http_server.address", "0.0.0.0")
	v.SetDefault("http_server.port", 3000)
	v.SetDefault("http_server.read_header_timeout", 10*time.Second)
	v.SetDefault("http_server.max_body_bytes", 1<<20)

	v.SetDefault("grpc_server.enabled", true)
	v.SetDefault("grpc_server.address", "0.0.0.0")
	v.SetDefault("grpc_server.port", 50053)

	v.SetDefault("prometheus.enabled", true)
	v.SetDefault("prometheus.address", "0.0.0.0")
	v.SetDefault("prometheus.port", 9103)

	v.SetDefault("storage.driver", StorageDriverFile)
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("storage.posts_file", "posts.json")
	v.SetDefault("storage.webhook_config_file", "webhook-config.json")

	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "admin")
	v.SetDefault("database.host", "blog-db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.db_name", "blog")

	v.SetDefault("redis.address", "redis")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.key_prefix", "blog:")

	v.SetDefault("webhook.timeout", 5*time.Second)
	v.SetDefault("webhook.source", "blog-application")
	v.SetDefault("webhook.secret", "")

	v.SetDefault("events.buffer_size", 16)
}

// Load reads ./config/config.yaml when present; defaults and environment
// variables (STORAGE_DRIVER, WEBHOOK_TIMEOUT, ...) cover the rest.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Env: v.GetString("env"),
		HTTPServer: HTTPServer{
			Address:           v.GetString("http_server.address"),
			Port:              v.GetInt("http_server.port"),
			ReadHeaderTimeout: v.GetDuration("http_server.read_header_timeout"),
			MaxBodyBytes:      v.GetInt64("http_server.max_body_bytes"),
		},
		GRPCServer: GRPCServer{
			Enabled: v.GetBool("grpc_server.enabled"),
			Address: v.GetString("grpc_server.address"),
			Port:    v.GetInt("grpc_server.port"),
		},
		Prometheus: Prometheus{
			Enabled: v.GetBool("prometheus.enabled"),
			Address: v.GetString("prometheus.address"),
			Port:    v.GetInt("prometheus.port"),
		},
		Storage: Storage{
			Driver:            strings.ToLower(v.GetString("storage.driver")),
			DataDir:           v.GetString("storage.data_dir"),
			PostsFile:         v.GetString("storage.posts_file"),
			WebhookConfigFile: v.GetString("storage.webhook_config_file"),
		},
		Database: Database{
			Username: v.GetString("database.username"),
			Password: v.GetString("database.password"),
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			DbName:   v.GetString("database.db_name"),
		},
		Redis: Redis{
			Address:   v.GetString("redis.address"),
			Port:      v.GetInt("redis.port"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			PoolSize:  v.GetInt("redis.pool_size"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Webhook: Webhook{
			Timeout: v.GetDuration("webhook.timeout"),
			Source:  v.GetString("webhook.source"),
			Secret:  v.GetString("webhook.secret"),
		},
		Events: Events{
			BufferSize: v.GetInt("events.buffer_size"),
		},
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Printf("Error reading config file: %s", err)
		os.Exit(1)
	}
	return cfg
}
