package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompet/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "csv", cfg.Store.Driver)
	assert.Equal(t, "catatan.csv", cfg.Store.CSVFile)
	assert.Equal(t, "Sheet1", cfg.Sheets.Range)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("DIGEST_SCHEDULE", "0 21 * * *")
	t.Setenv("SPEECH_TIMEOUT", "15s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, config.StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.Store.SQLitePath)
	assert.Equal(t, "0 21 * * *", cfg.Discord.Digest)
	assert.Equal(t, 15*time.Second, cfg.Speech.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"UnknownDriver":   {"STORE_DRIVER": "mongo"},
		"SheetsNoID":      {"USE_SHEETS": "true", "SHEET_ID": "", "GOOGLE_SERVICE_ACCOUNT_JSON": "{}"},
		"SpeechNoAPIKey":  {"USE_SPEECH": "true", "GEMINI_API_KEY": ""},
		"MalformedNumber": {"PORT": "eighty"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestConnectionString(t *testing.T) {
	var cfg config.Config
	cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name = "u", "p", "db", 5432, "dompet"

	assert.Equal(t, "postgres://u:p@db:5432/dompet?sslmode=disable", cfg.ConnectionString())
}
