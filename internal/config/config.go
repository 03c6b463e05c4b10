package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StoreCSV      = "csv"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"Dompet"`
		Port      int    `envconfig:"PORT" default:"8080"`
		TZ        string `envconfig:"TZ" default:"Asia/Jakarta"`
		RulesFile string `envconfig:"RULES_FILE"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"console"`
		File   string `envconfig:"TUI_LOG_FILE"` // terminal UI only
	}

	Store struct {
		Driver     string `envconfig:"STORE_DRIVER" default:"csv"`
		CSVFile    string `envconfig:"CSV_FILE" default:"catatan.csv"`
		SQLitePath string `envconfig:"SQLITE_PATH" default:"dompet.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"dompet"`
		MaxConns int    `envconfig:"DB_MAX_CONNS" default:"10"`
	}

	Sheets struct {
		Enabled         bool   `envconfig:"USE_SHEETS" default:"false"`
		SheetID         string `envconfig:"SHEET_ID"`
		Range           string `envconfig:"SHEET_RANGE" default:"Sheet1"`
		CredentialsJSON string `envconfig:"GOOGLE_SERVICE_ACCOUNT_JSON"`
	}

	Speech struct {
		Enabled bool          `envconfig:"USE_SPEECH" default:"false"`
		APIKey  string        `envconfig:"GEMINI_API_KEY"`
		Model   string        `envconfig:"SPEECH_MODEL" default:"gemini-2.5-flash"`
		Timeout time.Duration `envconfig:"SPEECH_TIMEOUT" default:"60s"`
	}

	Discord struct {
		Token     string `envconfig:"DISCORD_BOT_TOKEN"`
		ChannelID string `envconfig:"DISCORD_CHANNEL_ID"`
		Digest    string `envconfig:"DIGEST_SCHEDULE"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Validate checks settings that only make sense together.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreCSV, StoreSQLite, StorePostgres:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Sheets.Enabled && (c.Sheets.SheetID == "" || c.Sheets.CredentialsJSON == "") {
		return fmt.Errorf("USE_SHEETS requires SHEET_ID and GOOGLE_SERVICE_ACCOUNT_JSON")
	}

	if c.Speech.Enabled && c.Speech.APIKey == "" {
		return fmt.Errorf("USE_SPEECH requires GEMINI_API_KEY")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
