package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/andresuchdata/forecast-engine/internal/forecast"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Forecast ForecastConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// ForecastConfig carries the engine defaults; per-request query parameters
// can still override them.
type ForecastConfig struct {
	AnalysisWindowDays int
	Horizons           []int
	LeadTimeDays       int
	SafetyDays         int
	StressFactor       float64
	CIWidth            float64
}

// Engine converts the loaded defaults into an engine config.
func (fc ForecastConfig) Engine() forecast.Config {
	return forecast.Config{
		AnalysisWindowDays: fc.AnalysisWindowDays,
		Horizons:           fc.Horizons,
		LeadTimeDays:       fc.LeadTimeDays,
		SafetyDays:         fc.SafetyDays,
		StressFactor:       fc.StressFactor,
		CIWidth:            fc.CIWidth,
	}
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "forecast")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_REPORT_TTL_SECONDS", 300)
		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "forecast-reports")
		viper.SetDefault("STORAGE_PREFIX", "reports")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("FORECAST_WINDOW_DAYS", forecast.DefaultAnalysisWindowDays)
		viper.SetDefault("FORECAST_HORIZONS", forecast.DefaultHorizons())
		viper.SetDefault("FORECAST_LEAD_TIME_DAYS", forecast.DefaultLeadTimeDays)
		viper.SetDefault("FORECAST_SAFETY_DAYS", forecast.DefaultSafetyDays)
		viper.SetDefault("FORECAST_STRESS_FACTOR", forecast.DefaultStressFactor)
		viper.SetDefault("FORECAST_CI_WIDTH", forecast.DefaultCIWidth)

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ReportTTLSeconds: viper.GetInt("CACHE_REPORT_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Prefix:    viper.GetString("STORAGE_PREFIX"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
			Forecast: ForecastConfig{
				AnalysisWindowDays: viper.GetInt("FORECAST_WINDOW_DAYS"),
				Horizons:           viper.GetIntSlice("FORECAST_HORIZONS"),
				LeadTimeDays:       viper.GetInt("FORECAST_LEAD_TIME_DAYS"),
				SafetyDays:         viper.GetInt("FORECAST_SAFETY_DAYS"),
				StressFactor:       viper.GetFloat64("FORECAST_STRESS_FACTOR"),
				CIWidth:            viper.GetFloat64("FORECAST_CI_WIDTH"),
			},
		}
	})

	return instance
}
