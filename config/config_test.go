package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/javisen/esios-go/esios"
)

const testConfig = `
api:
  address: "127.0.0.1"
  port: 8080
database:
  path: "./data/esios.db"
  data_retention_days: 30
esios:
  token: "secret-token"
  tariff: "2.0TD (Ceuta/Melilla)"
  zone: "Ceuta"
  timezone: "Africa/Ceuta"
  indicators: ["PVPC", "CO2_EMISSIONS"]
  run_at: "15,45 * * * *"
mqtt:
  host: "broker.local"
  port: 1883
logging:
  console_level: "DEBUG"
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	t.Run("esios section", func(t *testing.T) {
		if c.Esios.Token != "secret-token" {
			t.Errorf("expected token secret-token, got %q", c.Esios.Token)
		}
		if c.Esios.GetTariff() != "2.0TD (Ceuta/Melilla)" {
			t.Errorf("expected Ceuta/Melilla tariff, got %q", c.Esios.GetTariff())
		}
		if c.Esios.GetZone() != "Ceuta" {
			t.Errorf("expected zone Ceuta, got %q", c.Esios.GetZone())
		}
		if c.Esios.GetTimezone() != "Africa/Ceuta" {
			t.Errorf("expected timezone Africa/Ceuta, got %q", c.Esios.GetTimezone())
		}
		if len(c.Esios.GetIndicators()) != 2 {
			t.Errorf("expected 2 indicators, got %v", c.Esios.GetIndicators())
		}
		if c.Esios.GetRunAt() != "15,45 * * * *" {
			t.Errorf("expected configured schedule, got %q", c.Esios.GetRunAt())
		}
	})

	t.Run("defaults", func(t *testing.T) {
		if c.Database.GetDataRetentionDays() != 30 {
			t.Errorf("expected data retention 30, got %d", c.Database.GetDataRetentionDays())
		}
		if c.Database.GetBackupRetentionDays() != 90 {
			t.Errorf("expected default backup retention 90, got %d", c.Database.GetBackupRetentionDays())
		}
		if c.Gui.GetTimezone() != "UTC" {
			t.Errorf("expected default GUI timezone UTC, got %q", c.Gui.GetTimezone())
		}
		if c.Mqtt.GetTopicPrefix() != "esios" {
			t.Errorf("expected default topic prefix esios, got %q", c.Mqtt.GetTopicPrefix())
		}
		if !c.Mqtt.Enabled() {
			t.Errorf("expected mqtt enabled when host is set")
		}
	})
}

func TestDefaultIndicators(t *testing.T) {
	publicOnly := AppConfigEsios{}
	keys := publicOnly.GetIndicators()
	if len(keys) != 2 || keys[0] != esios.KeyPVPC {
		t.Errorf("without a token only the PVPC sensors are enabled, got %v", keys)
	}

	private := AppConfigEsios{Token: "t"}
	if len(private.GetIndicators()) < 5 {
		t.Errorf("with a token the default household set is enabled, got %v", private.GetIndicators())
	}
}
