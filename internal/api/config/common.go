package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 60)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.enable", false)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.root", "./uploads")
	v.SetDefault("thumbnail.width", 400)
	v.SetDefault("thumbnail.dir", "thumbnails")
	v.SetDefault("cleanup.spec", "@daily")
	v.SetDefault("cleanup.grace_days", 3)
	v.SetDefault("event.buffer", 256)
	v.SetDefault("event.workers", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("upload.max_size", 20<<20)
}

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	cfg, err := Load(viper.New(), "./configs")
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// Load 读取指定目录下的 config.yaml，环境变量 MICROBLOG_* 覆盖同名配置
func Load(v *viper.Viper, paths ...string) (*Config, error) {
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix("MICROBLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
