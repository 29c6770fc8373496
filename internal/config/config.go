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
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Dataset       Dataset       `mapstructure:",squash"`
	LLM           LLM           `mapstructure:",squash"`
	AnomalyDigest AnomalyDigest `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Dataset define a fonte tabular de vendas. Kind escolhe entre "csv" e
// "postgres"; o dataset é carregado uma única vez na subida do processo.
type Dataset struct {
	Kind     string `mapstructure:"dataset_kind"`
	CSVPath  string `mapstructure:"dataset_csv_path"`
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"dataset_db_driver"`
	URL      string `mapstructure:"dataset_db_url"`
	User     string `mapstructure:"dataset_db_user"`
	Password string `mapstructure:"dataset_db_password"`
	Table    string `mapstructure:"dataset_db_table"`
}

// LLM configura o provedor de linguagem usado pelo orquestrador.
// Provider aceita "openai" (qualquer endpoint compatível) ou "gemini".
type LLM struct {
	Provider    string  `mapstructure:"llm_provider"`
	BaseURL     string  `mapstructure:"llm_base_url"`
	APIKey      string  `mapstructure:"llm_api_key"`
	Model       string  `mapstructure:"llm_model"`
	Temperature float64 `mapstructure:"llm_temperature"`
}

type AnomalyDigest struct {
	CronSchedule string  `mapstructure:"anomaly_digest_cron"`
	Enabled      bool    `mapstructure:"anomaly_digest_enabled"`
	Window       int     `mapstructure:"anomaly_digest_window"`
	ZThreshold   float64 `mapstructure:"anomaly_digest_z_threshold"`
}

type Auth struct {
	Secret               string `mapstructure:"auth_secret"`
	OperatorEmail        string `mapstructure:"auth_operator_email"`
	OperatorPasswordHash string `mapstructure:"auth_operator_password_hash"`
	TokenTTLHours        int    `mapstructure:"auth_token_ttl_hours"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATASET_KIND", "csv")
	viper.SetDefault("DATASET_CSV_PATH", "data/sales.csv")
	viper.SetDefault("DATASET_DB_DRIVER", "postgres")
	viper.SetDefault("DATASET_DB_URL", "localhost:5432/cpg")
	viper.SetDefault("DATASET_DB_USER", "postgres")
	viper.SetDefault("DATASET_DB_PASSWORD", "root")
	viper.SetDefault("DATASET_DB_TABLE", "sales")

	viper.SetDefault("LLM_PROVIDER", "openai")
	viper.SetDefault("LLM_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("LLM_API_KEY", "your_api_key") // ONLY LOCAL
	viper.SetDefault("LLM_MODEL", "gpt-4o-mini")
	viper.SetDefault("LLM_TEMPERATURE", 0.2)

	// Defaults para a varredura agendada de anomalias
	viper.SetDefault("ANOMALY_DIGEST_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("ANOMALY_DIGEST_ENABLED", false)
	viper.SetDefault("ANOMALY_DIGEST_WINDOW", 7)
	viper.SetDefault("ANOMALY_DIGEST_Z_THRESHOLD", 2.0)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_OPERATOR_EMAIL", "operator@localhost")
	viper.SetDefault("AUTH_OPERATOR_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

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

	config.Dataset.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Dataset.Driver,
		config.Dataset.User,
		config.Dataset.Password,
		config.Dataset.URL,
	)

	return config, nil
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
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
