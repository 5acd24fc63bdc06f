package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configurations from the given TOML file. Secrets can be
// overridden with environment variables so they never have to live in the
// config file checked into the deployment repo.
func Load(path string) (*Configs, error) {
	cfg := defaultConfigs()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("PARNASO_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}

	if v := os.Getenv("PARNASO_TOKEN_SECRET"); v != "" {
		cfg.Auth.TokenSecret = v
	}

	if v := os.Getenv("PARNASO_SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}

	if v := os.Getenv("PARNASO_S3_SECRET_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}

	return cfg, nil
}

func defaultConfigs() *Configs {
	return &Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "parnaso",
			User:     "parnaso",
		},
		ApiServer: ServerConfigs{
			Host:         "localhost",
			Port:         "8080",
			MaxLimit:     50,
			DefaultLimit: 20,
		},
		ProxyServer: ServerConfigs{
			Host: "localhost",
			Port: "8081",
		},
		Auth: AuthConfigs{
			AccessToken:  TokenConfigs{Expiration: 5 * time.Minute},
			RefreshToken: TokenConfigs{Expiration: 24 * time.Hour},
		},
		Session: SessionConfigs{Name: "parnaso_session"},
		File:    FileConfigs{MaxSize: 2 << 20},
		Kafka:   KafkaConfigs{Addr: "localhost:9092", Topic: "parnaso.notifications"},
		Notification: NotificationConfigs{
			WriteWait:      10 * time.Second,
			PongWait:       60 * time.Second,
			PingPeriod:     54 * time.Second,
			RetryBaseDelay: time.Second,
			RetryMaxDelay:  30 * time.Second,
		},
		Search: SearchConfigs{IndexDir: "searchindex"},
	}
}
