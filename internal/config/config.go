package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admission AdmissionConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string `env:"SERVER_PORT" envDefault:"8080"`
	Env  string `env:"SERVER_ENV" envDefault:"development"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"hackathon"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL           string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	Password      string `env:"REDIS_PASSWORD"`
	DecisionQueue string `env:"REDIS_DECISION_QUEUE" envDefault:"hackathon:decisions"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" envDefault:"change-this-in-production"`
	Expiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
}

// AdmissionConfig carries the competition rules enforced by the engine.
type AdmissionConfig struct {
	TeamSize             int `env:"ADMISSION_TEAM_SIZE" envDefault:"5"`
	MinFemaleMembers     int `env:"ADMISSION_MIN_FEMALE_MEMBERS" envDefault:"2"`
	MinDescriptionLength int `env:"ADMISSION_MIN_DESCRIPTION_LENGTH" envDefault:"20"`
	RegionQuota          int `env:"ADMISSION_REGION_QUOTA" envDefault:"10"`
	MaxQualitativeScore  int `env:"ADMISSION_MAX_QUALITATIVE_SCORE" envDefault:"40"`
	SkillPoints          int `env:"ADMISSION_SKILL_POINTS" envDefault:"5"`
	ConflictRetries      int `env:"ADMISSION_CONFLICT_RETRIES" envDefault:"3"`
}

var parseEnv = env.Parse

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Admission.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a AdmissionConfig) validate() error {
	switch {
	case a.TeamSize < 1:
		return fmt.Errorf("ADMISSION_TEAM_SIZE must be positive, got %d", a.TeamSize)
	case a.MinFemaleMembers < 0 || a.MinFemaleMembers > a.TeamSize:
		return fmt.Errorf("ADMISSION_MIN_FEMALE_MEMBERS must be within 0..%d, got %d", a.TeamSize, a.MinFemaleMembers)
	case a.RegionQuota < 0:
		return fmt.Errorf("ADMISSION_REGION_QUOTA must not be negative, got %d", a.RegionQuota)
	case a.MaxQualitativeScore < 0 || a.MaxQualitativeScore > 100:
		return fmt.Errorf("ADMISSION_MAX_QUALITATIVE_SCORE must be within 0..100, got %d", a.MaxQualitativeScore)
	case a.ConflictRetries < 1:
		return fmt.Errorf("ADMISSION_CONFLICT_RETRIES must be at least 1, got %d", a.ConflictRetries)
	}
	return nil
}
