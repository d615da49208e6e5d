package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Thumbnail ThumbnailConfig `mapstructure:"thumbnail"`
	Cleanup   CleanupConfig   `mapstructure:"cleanup"`
	Event     EventConfig     `mapstructure:"event"`
	Log       LogConfig       `mapstructure:"log"`
	Upload    UploadConfig    `mapstructure:"upload"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver      string `mapstructure:"driver"` // mysql | memory
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// StorageConfig 附件存储
type StorageConfig struct {
	Driver string      `mapstructure:"driver"` // local | minio
	Root   string      `mapstructure:"root"`
	MinIO  MinIOConfig `mapstructure:"minio"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// ThumbnailConfig 缩略图
type ThumbnailConfig struct {
	Width int    `mapstructure:"width"`
	Dir   string `mapstructure:"dir"`
}

// CleanupConfig 回收站清理
type CleanupConfig struct {
	Spec      string `mapstructure:"spec"`
	GraceDays int    `mapstructure:"grace_days"`
}

// EventConfig 进程内事件总线
type EventConfig struct {
	Buffer  int `mapstructure:"buffer"`
	Workers int `mapstructure:"workers"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type UploadConfig struct {
	MaxSize int64 `mapstructure:"max_size"`
}
