package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Políticas para disparos sobrepostos de execução de relatório
const (
	OverlapPolicyReject = "reject"
	OverlapPolicyAllow  = "allow"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	AdManager      AdManager      `mapstructure:",squash"`
	ServiceAccount ServiceAccount `mapstructure:",squash"`
	ReportSync     ReportSync     `mapstructure:",squash"`
	Backfill       Backfill       `mapstructure:",squash"`
	Alert          Alert          `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
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

type AdManager struct {
	BaseURL           string        `mapstructure:"ad_manager_base_url"`
	Version           string        `mapstructure:"ad_manager_version"`
	ApplicationName   string        `mapstructure:"ad_manager_application_name"`
	RequestTimeout    time.Duration `mapstructure:"ad_manager_request_timeout"`
	MetadataTimeout   time.Duration `mapstructure:"ad_manager_metadata_timeout"`
	RequestsPerSecond float64       `mapstructure:"ad_manager_requests_per_second"`
}

// ServiceURL monta a URL de um serviço SOAP da API (ReportService, NetworkService...)
func (a AdManager) ServiceURL(service string) string {
	return fmt.Sprintf("%s/apis/ads/publisher/%s/%s", strings.TrimRight(a.BaseURL, "/"), a.Version, service)
}

// Namespace retorna o namespace XML da versão configurada da API
func (a AdManager) Namespace() string {
	return fmt.Sprintf("https://www.google.com/apis/ads/publisher/%s", a.Version)
}

type ServiceAccount struct {
	KeyFile  string `mapstructure:"service_account_key_file"`
	KeyDir   string `mapstructure:"service_account_key_dir"`
	TokenURL string `mapstructure:"service_account_token_url"`
	Scope    string `mapstructure:"service_account_scope"`
}

type ReportSync struct {
	CronSchedule         string        `mapstructure:"report_sync_cron"`
	Enabled              bool          `mapstructure:"report_sync_enabled"`
	LookbackDays         int           `mapstructure:"report_sync_lookback_days"`
	BatchSize            int           `mapstructure:"report_sync_batch_size"`
	DelayBetweenAccounts time.Duration `mapstructure:"report_sync_delay_between_accounts"`
	DelayBetweenBatches  time.Duration `mapstructure:"report_sync_delay_between_batches"`
	RetryAttempts        int           `mapstructure:"report_sync_retry_attempts"`
	RetryBaseDelay       time.Duration `mapstructure:"report_sync_retry_base_delay"`
	PollInterval         time.Duration `mapstructure:"report_sync_poll_interval"`
	MaxPollAttempts      int           `mapstructure:"report_sync_max_poll_attempts"`
	TolerantPolling      bool          `mapstructure:"report_sync_tolerant_polling"`
	ChunkThreshold       int           `mapstructure:"report_sync_chunk_threshold"`
	ChunkSize            int           `mapstructure:"report_sync_chunk_size"`
	UpsertChunkSize      int           `mapstructure:"report_sync_upsert_chunk_size"`
	OverlapPolicy        string        `mapstructure:"report_sync_overlap_policy"`
	LeaseTimeout         time.Duration `mapstructure:"report_sync_lease_timeout"`
}

type Backfill struct {
	Days          int `mapstructure:"backfill_days"`
	RetentionDays int `mapstructure:"backfill_retention_days"`
}

type Alert struct {
	SlackWebhookURL string `mapstructure:"alert_slack_webhook_url"`
	Channel         string `mapstructure:"alert_slack_channel"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000") // separadas por vírgula

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ad_revenue")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AD_MANAGER_BASE_URL", "https://ads.google.com")
	viper.SetDefault("AD_MANAGER_VERSION", "v202405")
	viper.SetDefault("AD_MANAGER_APPLICATION_NAME", "ad-revenue-api")
	viper.SetDefault("AD_MANAGER_REQUEST_TIMEOUT", "120s")   // submissão, status e download
	viper.SetDefault("AD_MANAGER_METADATA_TIMEOUT", "30s")   // consultas de metadados da rede
	viper.SetDefault("AD_MANAGER_REQUESTS_PER_SECOND", 2.0) // cota da API

	viper.SetDefault("SERVICE_ACCOUNT_KEY_FILE", "service-account.json")
	viper.SetDefault("SERVICE_ACCOUNT_KEY_DIR", "")
	viper.SetDefault("SERVICE_ACCOUNT_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("SERVICE_ACCOUNT_SCOPE", "https://www.googleapis.com/auth/dfp")

	// Defaults para sincronização de relatórios de receita
	viper.SetDefault("REPORT_SYNC_CRON", "0 4 * * *")                // Todos os dias às 4h da manhã
	viper.SetDefault("REPORT_SYNC_ENABLED", false)                   // Habilitar sincronização agendada
	viper.SetDefault("REPORT_SYNC_LOOKBACK_DAYS", 3)                 // Reprocessa os últimos 3 dias
	viper.SetDefault("REPORT_SYNC_BATCH_SIZE", 10)                   // Contas por lote
	viper.SetDefault("REPORT_SYNC_DELAY_BETWEEN_ACCOUNTS", "2s")     // Pausa entre contas do mesmo lote
	viper.SetDefault("REPORT_SYNC_DELAY_BETWEEN_BATCHES", "30s")     // Pausa entre lotes
	viper.SetDefault("REPORT_SYNC_RETRY_ATTEMPTS", 3)                // Tentativas por conta
	viper.SetDefault("REPORT_SYNC_RETRY_BASE_DELAY", "5s")           // Base do backoff exponencial
	viper.SetDefault("REPORT_SYNC_POLL_INTERVAL", "10s")             // Intervalo entre consultas de status
	viper.SetDefault("REPORT_SYNC_MAX_POLL_ATTEMPTS", 90)            // 90 x 10s = 15 minutos
	viper.SetDefault("REPORT_SYNC_TOLERANT_POLLING", true)           // Erro transitório no polling não aborta o job
	viper.SetDefault("REPORT_SYNC_CHUNK_THRESHOLD", 10000)           // Acima disso agrega em blocos
	viper.SetDefault("REPORT_SYNC_CHUNK_SIZE", 10000)                // Tamanho do bloco de agregação
	viper.SetDefault("REPORT_SYNC_UPSERT_CHUNK_SIZE", 1000)          // Linhas por upsert
	viper.SetDefault("REPORT_SYNC_OVERLAP_POLICY", OverlapPolicyReject)
	viper.SetDefault("REPORT_SYNC_LEASE_TIMEOUT", "6h")              // Lease mais antigo que isso pode ser retomado

	viper.SetDefault("BACKFILL_DAYS", 90)
	viper.SetDefault("BACKFILL_RETENTION_DAYS", 30)

	viper.SetDefault("ALERT_SLACK_WEBHOOK_URL", "")
	viper.SetDefault("ALERT_SLACK_CHANNEL", "")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate garante que os limites do pipeline fazem sentido antes de iniciar
func (c *Config) Validate() error {
	rs := c.ReportSync

	if rs.BatchSize <= 0 {
		return fmt.Errorf("config: REPORT_SYNC_BATCH_SIZE deve ser maior que zero")
	}
	if rs.RetryAttempts <= 0 {
		return fmt.Errorf("config: REPORT_SYNC_RETRY_ATTEMPTS deve ser maior que zero")
	}
	if rs.MaxPollAttempts <= 0 {
		return fmt.Errorf("config: REPORT_SYNC_MAX_POLL_ATTEMPTS deve ser maior que zero")
	}
	if rs.ChunkSize <= 0 || rs.UpsertChunkSize <= 0 {
		return fmt.Errorf("config: tamanhos de bloco devem ser maiores que zero")
	}
	if rs.LookbackDays <= 0 {
		return fmt.Errorf("config: REPORT_SYNC_LOOKBACK_DAYS deve ser maior que zero")
	}

	switch rs.OverlapPolicy {
	case OverlapPolicyReject, OverlapPolicyAllow:
	default:
		return fmt.Errorf("config: REPORT_SYNC_OVERLAP_POLICY inválida: %q (use reject ou allow)", rs.OverlapPolicy)
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
