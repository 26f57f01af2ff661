package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Photon    PhotonConfig
	Nominatim NominatimConfig
	OSRM      OSRMConfig
	Resolver  ResolverConfig
	Solver    SolverConfig
	Log       LogConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig - настройки персистентного кэша геокодинга.
// Backend: file (по умолчанию), memory, redis или postgres.
type CacheConfig struct {
	Backend  string
	FilePath string
}

// PhotonConfig - основной провайдер геокодинга
type PhotonConfig struct {
	BaseURL        string
	BBox           string // смещение выдачи к рабочему региону, "minLon,minLat,maxLon,maxLat"
	Lang           string
	RequestTimeout int // секунды
}

// NominatimConfig - строгий fallback-провайдер геокодинга
type NominatimConfig struct {
	BaseURL        string
	CountryCodes   string
	UserAgent      string
	MinInterval    time.Duration // минимальная пауза между запросами
	Cooldown       time.Duration // пауза перед повтором после rate limit
	RequestTimeout int           // секунды
}

// OSRMConfig - провайдер дорожной маршрутизации
type OSRMConfig struct {
	BaseURL             string
	Profile             string
	RequestTimeout      int // секунды
	PairwiseConcurrency int // пул парных добивок матрицы
}

// ResolverConfig - параметры разрешения имён
type ResolverConfig struct {
	Concurrency int
}

// SolverConfig - параметры выбора алгоритма
type SolverConfig struct {
	ExactThreshold int
}

// LogConfig - уровень и формат логирования (json или console)
type LogConfig struct {
	Level  string
	Format string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env опционален: без него конфигурация берётся из окружения
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Backend:  viper.GetString("CACHE_BACKEND"),
			FilePath: viper.GetString("CACHE_FILE_PATH"),
		},
		Photon: PhotonConfig{
			BaseURL:        viper.GetString("GEOCODER_PRIMARY_URL"),
			BBox:           viper.GetString("GEOCODER_PRIMARY_BBOX"),
			Lang:           viper.GetString("GEOCODER_PRIMARY_LANG"),
			RequestTimeout: viper.GetInt("GEOCODER_TIMEOUT"),
		},
		Nominatim: NominatimConfig{
			BaseURL:        viper.GetString("GEOCODER_FALLBACK_URL"),
			CountryCodes:   viper.GetString("GEOCODER_FALLBACK_COUNTRY_CODES"),
			UserAgent:      viper.GetString("GEOCODER_USER_AGENT"),
			MinInterval:    time.Duration(viper.GetInt("GEOCODER_FALLBACK_MIN_INTERVAL")) * time.Second,
			Cooldown:       time.Duration(viper.GetInt("GEOCODER_FALLBACK_COOLDOWN")) * time.Second,
			RequestTimeout: viper.GetInt("GEOCODER_TIMEOUT"),
		},
		OSRM: OSRMConfig{
			BaseURL:             viper.GetString("ROUTING_BASE_URL"),
			Profile:             viper.GetString("ROUTING_PROFILE"),
			RequestTimeout:      viper.GetInt("ROUTING_TIMEOUT"),
			PairwiseConcurrency: viper.GetInt("ROUTING_PAIRWISE_CONCURRENCY"),
		},
		Resolver: ResolverConfig{
			Concurrency: viper.GetInt("GEOCODER_RESOLVE_CONCURRENCY"),
		},
		Solver: SolverConfig{
			ExactThreshold: viper.GetInt("SOLVER_EXACT_THRESHOLD"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "file"
	}
	if cfg.Cache.FilePath == "" {
		cfg.Cache.FilePath = "geocode_cache.json"
	}
	if cfg.Photon.BaseURL == "" {
		cfg.Photon.BaseURL = "https://photon.komoot.io"
	}
	if cfg.Photon.Lang == "" {
		cfg.Photon.Lang = "en"
	}
	if cfg.Photon.RequestTimeout == 0 {
		cfg.Photon.RequestTimeout = 10
	}
	if cfg.Nominatim.BaseURL == "" {
		cfg.Nominatim.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Nominatim.UserAgent == "" {
		cfg.Nominatim.UserAgent = "route-optimizer/1.0"
	}
	if cfg.Nominatim.MinInterval == 0 {
		cfg.Nominatim.MinInterval = 2 * time.Second
	}
	if cfg.Nominatim.Cooldown == 0 {
		cfg.Nominatim.Cooldown = 5 * time.Second
	}
	if cfg.Nominatim.RequestTimeout == 0 {
		cfg.Nominatim.RequestTimeout = 10
	}
	if cfg.OSRM.BaseURL == "" {
		cfg.OSRM.BaseURL = "https://router.project-osrm.org"
	}
	if cfg.OSRM.Profile == "" {
		cfg.OSRM.Profile = "driving"
	}
	if cfg.OSRM.RequestTimeout == 0 {
		cfg.OSRM.RequestTimeout = 30
	}
	if cfg.OSRM.PairwiseConcurrency == 0 {
		cfg.OSRM.PairwiseConcurrency = 4
	}
	if cfg.Resolver.Concurrency == 0 {
		cfg.Resolver.Concurrency = 4
	}
	if cfg.Solver.ExactThreshold == 0 {
		cfg.Solver.ExactThreshold = 10
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "route-optimize-workers"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	return cfg, nil
}

// isNotExist распознаёт отсутствие .env при явном SetConfigFile
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN собирает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr возвращает адрес Redis в форме host:port
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
