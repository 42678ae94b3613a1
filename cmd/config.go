package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	AutoConfirmSchedule          string        `env:"AUTO_CONFIRM_SCHEDULE" envDefault:"0 */5 * * * *"`
	AutoConfirmWindow            time.Duration `env:"AUTO_CONFIRM_WINDOW" envDefault:"48h"`
	NotificationDispatchSchedule string        `env:"NOTIFICATION_DISPATCH_SCHEDULE" envDefault:"*/10 * * * * *"`

	KafkaBrokers           []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaNotificationTopic string   `env:"KAFKA_NOTIFICATION_TOPIC" envDefault:"notifications"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	ProofStorageDir string `env:"PROOF_STORAGE_DIR" envDefault:"./storage/proofs"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AutoConfirmWindow <= 0 {
		return Config{}, fmt.Errorf("AUTO_CONFIRM_WINDOW must be positive, got %s", cfg.AutoConfirmWindow)
	}
	return cfg, nil
}

// DSN is the libpq connection string of the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
