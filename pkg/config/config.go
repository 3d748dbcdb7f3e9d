package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	SQLite    SQLiteConfig
	Redis     RedisConfig
	YouTube   YouTubeConfig
	Sentiment SentimentConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

type SQLiteConfig struct {
	Path string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type YouTubeConfig struct {
	APIKey     string
	MaxResults int
	TimeoutSec int
}

type SentimentConfig struct {
	Provider   string
	APIKey     string
	Model      string
	TimeoutSec int
}

type CacheConfig struct {
	RecommendTTLSec int
	SessionTTLSec   int
}

type RateLimitConfig struct {
	MaxRequestsPerMinute int
}

type AuthConfig struct {
	AdminUsername string
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/learnify")

	viper.SetEnvPrefix("LEARNIFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 30)
	viper.SetDefault("server.bodyLimit", 1048576)

	viper.SetDefault("sqlite.path", "./data/learnify.db")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("youtube.maxResults", 6)
	viper.SetDefault("youtube.timeoutSec", 10)

	viper.SetDefault("sentiment.provider", "lexicon")
	viper.SetDefault("sentiment.model", "gpt-4o-mini")
	viper.SetDefault("sentiment.timeoutSec", 10)

	viper.SetDefault("cache.recommendTTLSec", 300)
	viper.SetDefault("cache.sessionTTLSec", 86400)

	viper.SetDefault("ratelimit.maxRequestsPerMinute", 60)

	viper.SetDefault("auth.adminUsername", "admin")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
