package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server Server
	MySQL  MySQL
	OpenAI OpenAI
	Auth   Auth
}

type Server struct {
	Port string `env:"PORT" envDefault:"8080"`
}

type MySQL struct {
	User     string `env:"MYSQL_USER" envDefault:"user"`
	Password string `env:"MYSQL_PWD" envDefault:"password"`
	Host     string `env:"MYSQL_HOST" envDefault:"tcp(127.0.0.1:3306)"`
	Database string `env:"MYSQL_DATABASE" envDefault:"dealscope_db"`
}

// DSN builds the go-sql-driver connection string.
func (m MySQL) DSN() string {
	return fmt.Sprintf("%s:%s@%s/%s?parseTime=true&loc=Local", m.User, m.Password, m.Host, m.Database)
}

type OpenAI struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4.1-mini"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
}

type Auth struct {
	Secret string `env:"AUTH_SECRET" envDefault:"dev-only-secret-change-me"`
}

// ReadConfig loads .env when present, then parses the environment.
func ReadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return config, nil
}
