package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                   App                   `mapstructure:",squash"`
	Server                Server                `mapstructure:",squash"`
	Database              Database              `mapstructure:",squash"`
	Dashboard             Dashboard             `mapstructure:",squash"`
	DashboardSnapshotSync DashboardSnapshotSync `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"env"`
}

type Dashboard struct {
	TrendMonths          int  `mapstructure:"dashboard_trend_months"`
	MaxTrendMonths       int  `mapstructure:"dashboard_max_trend_months"`
	SnapshotCacheEnabled bool `mapstructure:"dashboard_snapshot_cache_enabled"`
}

type DashboardSnapshotSync struct {
	CronSchedule        string `mapstructure:"dashboard_snapshot_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"dashboard_snapshot_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"dashboard_snapshot_sync_enabled"`
	MonthLookBack       int    `mapstructure:"dashboard_snapshot_sync_month_lookback"`
	RetentionMonths     int    `mapstructure:"dashboard_snapshot_sync_retention_months"`
}

// RequestDelay retorna o intervalo entre o cálculo de dois meses consecutivos
func (s DashboardSnapshotSync) RequestDelay() time.Duration {
	return time.Duration(s.RequestDelaySeconds) * time.Second
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales_pipeline?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("DASHBOARD_TREND_MONTHS", 6)               // Meses exibidos na tendência
	viper.SetDefault("DASHBOARD_MAX_TREND_MONTHS", 24)          // Limite aceito em trend_months
	viper.SetDefault("DASHBOARD_SNAPSHOT_CACHE_ENABLED", false) // Servir meses fechados a partir dos snapshots

	// Defaults para persistência mensal do dashboard
	viper.SetDefault("DASHBOARD_SNAPSHOT_SYNC_CRON", "0 2 1 * *")        // No primeiro dia de cada mês às 2h da manhã
	viper.SetDefault("DASHBOARD_SNAPSHOT_SYNC_REQUEST_DELAY_SECONDS", 1) // 1 segundo entre meses
	viper.SetDefault("DASHBOARD_SNAPSHOT_SYNC_ENABLED", false)           // Habilitar persistência mensal
	viper.SetDefault("DASHBOARD_SNAPSHOT_SYNC_MONTH_LOOKBACK", 1)        // 1 mês para calcular
	viper.SetDefault("DASHBOARD_SNAPSHOT_SYNC_RETENTION_MONTHS", 36)     // 0 mantém todos os snapshots

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("ENV", "development")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	if err := config.Validate(); err != nil {
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

// Validate verifica os limites do dashboard
func (c *Config) Validate() error {
	if c.Dashboard.MaxTrendMonths <= 0 {
		return fmt.Errorf("DASHBOARD_MAX_TREND_MONTHS deve ser positivo, recebido %d", c.Dashboard.MaxTrendMonths)
	}

	if c.Dashboard.TrendMonths <= 0 || c.Dashboard.TrendMonths > c.Dashboard.MaxTrendMonths {
		return fmt.Errorf("DASHBOARD_TREND_MONTHS deve estar entre 1 e %d, recebido %d",
			c.Dashboard.MaxTrendMonths, c.Dashboard.TrendMonths)
	}

	if c.DashboardSnapshotSync.MonthLookBack < 0 {
		return fmt.Errorf("DASHBOARD_SNAPSHOT_SYNC_MONTH_LOOKBACK não pode ser negativo")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
