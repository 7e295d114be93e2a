// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	Auth struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"auth"`
	JWT struct {
		// Supabaseプロジェクトの JWT Secret (HS256)
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"jwt"`
	OpenRouter struct {
		APIKey         string  `mapstructure:"api_key"`
		BaseURL        string  `mapstructure:"base_url"`
		Model          string  `mapstructure:"model"`
		Temperature    float64 `mapstructure:"temperature"`
		TimeoutSeconds int     `mapstructure:"timeout_seconds"`
		MaxRetries     int     `mapstructure:"max_retries"`
	} `mapstructure:"openrouter"`
}

// OpenRouterTimeout は設定値を time.Duration に変換して返します。
func (c *Config) OpenRouterTimeout() time.Duration {
	return time.Duration(c.OpenRouter.TimeoutSeconds) * time.Second
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数を自動で読み込む (例: APP_SERVER_PORT)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	// 秘匿値は素の環境変数名にも紐付ける (.env / デプロイ環境どちらでも使えるように)
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")
	viper.BindEnv("jwt.secret_key", "SUPABASE_JWT_SECRET")
	viper.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	viper.BindEnv("openrouter.base_url", "OPENROUTER_API_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		log.Println("Server port not set, using default ':8080'")
		Cfg.Server.Port = ":8080"
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if Cfg.OpenRouter.BaseURL == "" {
		Cfg.OpenRouter.BaseURL = "https://openrouter.ai/api/v1"
	}
	if Cfg.OpenRouter.Model == "" {
		log.Println("OpenRouter model not set, using default 'openai/gpt-4o-mini'")
		Cfg.OpenRouter.Model = "openai/gpt-4o-mini"
	}
	if Cfg.OpenRouter.Temperature <= 0 {
		Cfg.OpenRouter.Temperature = 0.7
	}
	if Cfg.OpenRouter.TimeoutSeconds <= 0 {
		Cfg.OpenRouter.TimeoutSeconds = 30
	}
	if Cfg.OpenRouter.MaxRetries <= 0 {
		Cfg.OpenRouter.MaxRetries = 3
	}
	if Cfg.OpenRouter.APIKey == "" {
		log.Println("Warning: OpenRouter API key is not set in config.")
	}

	// Auth.Enabled のデフォルト値を設定 (未設定なら true = 有効 にする)
	if !viper.IsSet("auth.enabled") {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		Cfg.Auth.Enabled = true
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("OpenRouter Model: %s", Cfg.OpenRouter.Model)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}
