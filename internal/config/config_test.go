package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("TALLY_TEST_DIR", "/srv/tally")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/ledger.json", want: filepath.Join(home, "ledger.json")},
		{in: "$TALLY_TEST_DIR/ledger.json", want: "/srv/tally/ledger.json"},
		{in: "/abs/path.json", want: "/abs/path.json"},
		{in: "relative/~/x", want: "relative/~/x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestLedgerAndArchivePath(t *testing.T) {
	defer viper.Reset()
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	viper.Reset()
	assert.Equal(t, filepath.Join(home, ".local/share/tally/ledger.json"), LedgerPath())
	assert.Equal(t, filepath.Join(home, ".local/share/tally/archive.db"), ArchivePath())

	viper.Set(KeyLedgerPath, "/tmp/custom.json")
	viper.Set(KeyArchivePath, "~/snapshots.db")
	assert.Equal(t, "/tmp/custom.json", LedgerPath())
	assert.Equal(t, filepath.Join(home, "snapshots.db"), ArchivePath())
}

func TestLoadSheetsConfig(t *testing.T) {
	defer viper.Reset()

	t.Run("from viper", func(t *testing.T) {
		viper.Reset()
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
		viper.Set("sheets.client_id", "id")
		viper.Set("sheets.client_secret", "secret")
		viper.Set("sheets.refresh_token", "token")
		viper.Set("sheets.spreadsheet_name", "Household")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "id", cfg.ClientID)
		assert.Equal(t, "Household", cfg.SpreadsheetName)
		assert.Equal(t, 1000, cfg.BatchSize)
	})

	t.Run("from environment", func(t *testing.T) {
		viper.Reset()
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/keys/sa.json")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "abc")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, "abc", cfg.SpreadsheetID)
	})

	t.Run("missing credentials", func(t *testing.T) {
		viper.Reset()
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")

		_, err := LoadSheetsConfig()
		assert.Error(t, err)
	})
}
