package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "github.com/miximax/miximax/pkg/logger"
)

type Config struct {
	App struct {
		Env         string `envconfig:"APP_ENV" default:"development"`
		Port        string `envconfig:"PORT" default:"8088"`
		FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
		DataDir     string `envconfig:"DATA_DIR" default:"./data"`
	}
	DB struct {
		Enabled  bool   `envconfig:"DB_ENABLED" default:"true"`
		Driver   string `envconfig:"DB_DRIVER" default:"postgres"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     string `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:"password"`
		Name     string `envconfig:"DB_NAME" default:"miximax"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}
	Redis struct {
		Addr       string        `envconfig:"REDIS_ADDR"`
		Password   string        `envconfig:"REDIS_PASSWORD"`
		DB         int           `envconfig:"REDIS_DB" default:"0"`
		SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"168h"`
	}
	Heartbeat struct {
		CronSecret string        `envconfig:"CRON_SECRET"`
		Interval   time.Duration `envconfig:"HEARTBEAT_INTERVAL" default:"24h"`
	}
}

// Global DB instance, set by Initialize when the database is enabled.
var DB *gorm.DB

// Global logger, set by Initialize. Defaults to a no-op logger.
var Log = zap.NewNop()

var appConfig *Config
var once sync.Once

// LoadConfig reads .env (when present) and decodes the environment.
func LoadConfig() (*Config, error) {
	envFileErr := godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log, err := applog.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	Log = log
	if envFileErr != nil {
		Log.Debug("No .env file loaded, relying on system environment variables", zap.Error(envFileErr))
	}
	if cfg.DB.Password == "password" && cfg.App.Env == "production" {
		Log.Warn("Using default DB password in production. Please set DB_PASSWORD.")
	}

	appConfig = cfg
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("DB_DRIVER: unsupported driver %q", c.DB.Driver)
	}
	if c.Heartbeat.Interval <= 0 {
		return fmt.Errorf("HEARTBEAT_INTERVAL: must be positive, got %s", c.Heartbeat.Interval)
	}
	return nil
}

// DSN renders the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DB.Driver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DB.Host,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.Port,
		c.DB.SSLMode,
	)
}

// ConnectDB opens the mirror database and sets the global DB.
func ConnectDB(cfg Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if cfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	dialector := postgres.Open(cfg.DSN())
	if cfg.DB.Driver == "mysql" {
		dialector = mysql.Open(cfg.DSN())
	}

	gormDB, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = gormDB
	Log.Info("Connected to database", zap.String("driver", cfg.DB.Driver), zap.String("host", cfg.DB.Host))
	return gormDB, nil
}

// Initialize loads the configuration and, when enabled, connects to the
// database. Only the first call does any work. An unreachable database is
// not fatal: DB stays nil and the heartbeat reports it.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		connectOptionalDB(*cfg)
	})
	return loadErr
}

func connectOptionalDB(cfg Config) {
	if !cfg.DB.Enabled {
		Log.Info("Database disabled, heartbeat and mirror are unavailable")
		return
	}
	if _, err := ConnectDB(cfg); err != nil {
		DB = nil
		Log.Warn("Database unreachable, heartbeat and mirror are unavailable",
			zap.String("driver", cfg.DB.Driver),
			zap.String("host", cfg.DB.Host),
			zap.Error(err),
		)
	}
}

// GetConfig returns the loaded configuration. It panics when called before
// Initialize or LoadConfig.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config: configuration not loaded, call config.Initialize() first")
	}
	return appConfig
}
