package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string `toml:"env"`

	Database     DatabaseConfigs     `toml:"database"`
	ApiServer    ServerConfigs       `toml:"api_server"`
	ProxyServer  ServerConfigs       `toml:"proxy_server"`
	Auth         AuthConfigs         `toml:"auth"`
	Session      SessionConfigs      `toml:"session"`
	Storage      S3Configs           `toml:"storage"`
	File         FileConfigs         `toml:"file"`
	Redis        RedisConfigs        `toml:"redis"`
	Kafka        KafkaConfigs        `toml:"kafka"`
	Notification NotificationConfigs `toml:"notification"`
	Search       SearchConfigs       `toml:"search"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host         string `toml:"host"`
	Port         string `toml:"port"`
	AllowCORS    []string `toml:"allow_cors"`
	MaxLimit     int    `toml:"max_limit"`
	DefaultLimit int    `toml:"default_limit"`
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret  string       `toml:"token_secret"`
	AccessToken  TokenConfigs `toml:"access_token"`
	RefreshToken TokenConfigs `toml:"refresh_token"`
}

type TokenConfigs struct {
	Expiration time.Duration `toml:"expiration"`
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
}

type S3Configs struct {
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	SSLDisabled    bool   `toml:"ssl_disabled"`
}

type FileConfigs struct {
	MaxSize int64 `toml:"max_size"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr  string `toml:"addr"`
	Topic string `toml:"topic"`
}

type NotificationConfigs struct {
	// WriteWait bounds a single websocket write. PingPeriod must be smaller
	// than PongWait or sessions get dropped while healthy.
	WriteWait  time.Duration `toml:"write_wait"`
	PongWait   time.Duration `toml:"pong_wait"`
	PingPeriod time.Duration `toml:"ping_period"`

	// RetryBaseDelay and RetryMaxDelay describe the reconnect policy announced
	// to clients on handshake. Clients falling back to polling should respect
	// the same backoff.
	RetryBaseDelay time.Duration `toml:"retry_base_delay"`
	RetryMaxDelay  time.Duration `toml:"retry_max_delay"`
}

type SearchConfigs struct {
	IndexDir string `toml:"index_dir"`
}
