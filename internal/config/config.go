package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                App                `mapstructure:",squash"`
	Server             Server             `mapstructure:",squash"`
	Database           Database           `mapstructure:",squash"`
	Sales              Sales              `mapstructure:",squash"`
	Report             Report             `mapstructure:",squash"`
	LowStockCheck      LowStockCheck      `mapstructure:",squash"`
	ActivityLogCleanup ActivityLogCleanup `mapstructure:",squash"`
	SecretKey          string             `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Sales struct {
	TaxRate float64 `mapstructure:"sales_tax_rate"`
}

type Report struct {
	// DynamicReorderLevel mantém o comportamento do sistema legado, em que o
	// limiar de reposição é função do estoque atual (max(5, floor(estoque*0.2))).
	// Com false, os relatórios passam a usar o campo reorder_level cadastrado.
	DynamicReorderLevel bool `mapstructure:"report_dynamic_reorder_level"`
}

type LowStockCheck struct {
	CronSchedule string `mapstructure:"low_stock_check_cron"`
	Enabled      bool   `mapstructure:"low_stock_check_enabled"`
}

type ActivityLogCleanup struct {
	CronSchedule  string `mapstructure:"activity_log_cleanup_cron"`
	RetentionDays int    `mapstructure:"activity_log_retention_days"`
	Enabled       bool   `mapstructure:"activity_log_cleanup_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/bakery")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("SALES_TAX_RATE", 0.0)

	viper.SetDefault("REPORT_DYNAMIC_REORDER_LEVEL", true)

	viper.SetDefault("LOW_STOCK_CHECK_CRON", "0 6 * * *") // Todos os dias às 6h da manhã
	viper.SetDefault("LOW_STOCK_CHECK_ENABLED", true)

	viper.SetDefault("ACTIVITY_LOG_CLEANUP_CRON", "0 4 * * 0") // Domingos às 4h da manhã
	viper.SetDefault("ACTIVITY_LOG_RETENTION_DAYS", 180)
	viper.SetDefault("ACTIVITY_LOG_CLEANUP_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Leitura do .env pelo Viper é opcional, já que usamos godotenv
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile tenta carregar o .env das localizações conhecidas
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
