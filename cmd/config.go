package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	EstimateTTL   time.Duration
	OffersFile    string
	BatchSchedule string
	RateLimit     float64
	RateBurst     int
	BodyLimit     string
	MaxParcels    int
	LogLevel      string
	ServiceName   string
}

// DSN returns the PostgreSQL connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
