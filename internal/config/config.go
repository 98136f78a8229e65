package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	App    App
	DB     DB
	Redis  Redis
	JWT    JWT
	Gomail Gomail
}

type App struct {
	App     string
	Version string
	Port    string
	BaseUrl string

	// SharePhone is the wa.me number used when building share links.
	// Empty means the link is built without a recipient.
	SharePhone string
}

type DB struct {
	DbHost string
	DbUser string
	DbPass string
	DbPort string
	DbName string
	DbSsl  string
	DbTz   string
}

type Redis struct {
	RedisHost     string
	RedisPort     string
	RedisUser     string
	RedisPassword string
}

type JWT struct {
	SecretKey string
}

type Gomail struct {
	SmtpHost     string
	SmtpPort     string
	AuthEmail    string
	AuthPassword string
	SenderName   string
}

var config *Config

func Init() {
	if err := godotenv.Load(".env"); err != nil {
		logrus.Info("no .env file found, reading configuration from environment")
	}

	config = &Config{
		App: App{
			App:        getEnv("APP_NAME", "tasktrack"),
			Version:    getEnv("APP_VERSION", "1.0.0"),
			Port:       getEnv("APP_PORT", "3000"),
			BaseUrl:    getEnv("APP_BASE_URL", "http://localhost:3000"),
			SharePhone: getEnv("APP_SHARE_PHONE", ""),
		},
		DB: DB{
			DbHost: getEnv("DB_HOST", "localhost"),
			DbUser: getEnv("DB_USER", "root"),
			DbPass: getEnv("DB_PASS", ""),
			DbPort: getEnv("DB_PORT", "3306"),
			DbName: getEnv("DB_NAME", "tasktrack"),
			DbSsl:  getEnv("DB_SSL", "false"),
			DbTz:   getEnv("DB_TZ", "Asia/Riyadh"),
		},
		Redis: Redis{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisUser:     getEnv("REDIS_USER", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWT{
			SecretKey: getEnv("JWT_SECRET_KEY", "secret"),
		},
		Gomail: Gomail{
			SmtpHost:     getEnv("SMTP_HOST", ""),
			SmtpPort:     getEnv("SMTP_PORT", "587"),
			AuthEmail:    getEnv("SMTP_AUTH_EMAIL", ""),
			AuthPassword: getEnv("SMTP_AUTH_PASSWORD", ""),
			SenderName:   getEnv("SMTP_SENDER_NAME", "tasktrack"),
		},
	}
}

func Get() *Config {
	if config == nil {
		Init()
	}
	return config
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
