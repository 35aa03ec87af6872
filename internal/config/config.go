package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

// Config 是同步服务（cmd/api、cmd/mail、cmd/seed）使用的配置
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
		MaxBodyBytes    int64  `env:"MAX_BODY_BYTES" envDefault:"4194304"` // 4 MiB
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Auth struct {
		Disabled bool `env:"DISABLED" envDefault:"false"` // 只用于本地开发
	} `envPrefix:"AUTH_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"720"` // 小时，30 天
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Seed struct {
		Staff struct {
			Count int `env:"COUNT" envDefault:"40"`
		} `envPrefix:"STAFF_"`
		Device struct {
			ID   string `env:"ID" envDefault:"board"`
			Name string `env:"NAME" envDefault:"Tablero principal"`
			Key  string `env:"KEY"`
		} `envPrefix:"DEVICE_"`
	} `envPrefix:"SEED_"`
	Report struct {
		Recipients []string `env:"RECIPIENTS" envSeparator:","`
	} `envPrefix:"REPORT_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		Queue          string `env:"QUEUE" envDefault:"report_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD"`
		ConnectTimeout   int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"2"`
		CacheExpiration  int    `env:"CACHE_EXPIRATION" envDefault:"300"` // 秒
	} `envPrefix:"REDIS_"`
}

// ClientConfig 是操作端 cmd/board 使用的配置，所有变量都以 BOARD_ 开头
type ClientConfig struct {
	Local struct {
		Path      string `env:"PATH" envDefault:"./data/board.db"`
		Namespace string `env:"NAMESPACE" envDefault:"rsu_v1_"`
	} `envPrefix:"LOCAL_"`
	Remote struct {
		BaseURL   string `env:"BASE_URL"`                     // 为空时只使用本地存储
		Timeout   int    `env:"TIMEOUT" envDefault:"4000"`    // 毫秒
		DeviceID  string `env:"DEVICE_ID" envDefault:"board"`
		DeviceKey string `env:"DEVICE_KEY"`
	} `envPrefix:"REMOTE_"`
	StrictIdentity bool `env:"STRICT_IDENTITY" envDefault:"false"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, firstError(err)
	}

	return cfg, nil
}

func LoadClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "BOARD_"}); err != nil {
		return nil, firstError(err)
	}

	return cfg, nil
}

func firstError(err error) error {
	aggErr := env.AggregateError{}
	if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
		// 只返回第一个错误使得日志更清晰
		return aggErr.Errors[0]
	}
	return err
}
