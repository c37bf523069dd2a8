package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	WebSocket WebSocketConfig
	Room      RoomConfig
	Auth      AuthConfig
	Redis     RedisConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

type RoomConfig struct {
	CommentBufferSize int    `mapstructure:"comment_buffer_size"`
	DefaultTitle      string `mapstructure:"default_title"`
}

type AuthConfig struct {
	Enabled bool
	Secret  string
	Issuer  string
}

type RedisConfig struct {
	Enabled     bool
	Address     string
	Password    string
	DB          int
	FeedChannel string `mapstructure:"feed_channel"`
}

type LogConfig struct {
	Level string
}

// Load reads configuration from ./config/config.yaml (if present) and
// environment variables, applying defaults for everything else.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file, rely on defaults and env vars.
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 4096)
	v.SetDefault("room.comment_buffer_size", 50)
	v.SetDefault("room.default_title", "Live Stream")
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.issuer", "laabobo-live")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.feed_channel", "relay:interactions")
	v.SetDefault("log.level", "info")

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("auth.enabled", "AUTH_ENABLED")
	v.BindEnv("auth.secret", "AUTH_SECRET")
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse durations
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)

	if cfg.Room.CommentBufferSize <= 0 {
		cfg.Room.CommentBufferSize = 50
	}

	return &cfg, nil
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	str := v.GetString(key)
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}
