package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration (asynq queue + rate limiting).
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisScanQueueDB int    `mapstructure:"REDIS_SCAN_QUEUE_DB"`

	// Firebase service account for FCM pushes. Empty disables push.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Cron expressions for the periodic scanners. Defaults cover the
	// whole scanner family; override per-deployment as needed.
	CronComidasProgramadas string `mapstructure:"CRON_COMIDAS_PROGRAMADAS"`
	CronComidasOmitidas    string `mapstructure:"CRON_COMIDAS_OMITIDAS"`
	CronMenuDiario         string `mapstructure:"CRON_MENU_DIARIO"`
	CronSesiones24h        string `mapstructure:"CRON_SESIONES_24H"`
	CronSesiones1h         string `mapstructure:"CRON_SESIONES_1H"`
	CronVideollamadas      string `mapstructure:"CRON_VIDEOLLAMADAS"`
	CronEntregas           string `mapstructure:"CRON_ENTREGAS"`
	CronPacientesInactivos string `mapstructure:"CRON_PACIENTES_INACTIVOS"`
	CronCierreSesiones     string `mapstructure:"CRON_CIERRE_SESIONES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SCAN_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "nutrivida")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")

	viper.SetDefault("CRON_COMIDAS_PROGRAMADAS", "@every 5m")
	viper.SetDefault("CRON_COMIDAS_OMITIDAS", "@every 10m")
	viper.SetDefault("CRON_MENU_DIARIO", "0 8 * * *")
	viper.SetDefault("CRON_SESIONES_24H", "@every 30m")
	viper.SetDefault("CRON_SESIONES_1H", "@every 5m")
	viper.SetDefault("CRON_VIDEOLLAMADAS", "@every 1m")
	viper.SetDefault("CRON_ENTREGAS", "0 18 * * *")
	viper.SetDefault("CRON_PACIENTES_INACTIVOS", "0 9 * * *")
	viper.SetDefault("CRON_CIERRE_SESIONES", "@every 10m")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
