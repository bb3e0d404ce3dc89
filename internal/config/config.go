package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConf struct {
	Addr        string `mapstructure:"addr"`
	Password    string `mapstructure:"password"`
	DB          int    `mapstructure:"db"`
	TokenTTLSec int    `mapstructure:"token_ttl_seconds"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	Group   string   `mapstructure:"group"`
}

type StorageConf struct {
	FolderPath string `mapstructure:"folder_path"`
}

type Config struct {
	App     AppConf     `mapstructure:"app"`
	Mongo   MongoConf   `mapstructure:"mongodb"`
	Redis   RedisConf   `mapstructure:"redis"`
	Kafka   KafkaConf   `mapstructure:"kafka"`
	Storage StorageConf `mapstructure:"storage"`
	Log     struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	ShutdownTimeout time.Duration
	TokenTTL        time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	if cfg.Redis.TokenTTLSec == 0 {
		cfg.Redis.TokenTTLSec = 86400 // 24h sessions
	}
	cfg.TokenTTL = time.Duration(cfg.Redis.TokenTTLSec) * time.Second
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "files_manager"
	}
	if cfg.Storage.FolderPath == "" {
		cfg.Storage.FolderPath = "/tmp/files_manager"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "file-thumbnails"
	}
	if cfg.Kafka.Group == "" {
		cfg.Kafka.Group = "thumbnail-worker"
	}
	return &cfg, nil
}
