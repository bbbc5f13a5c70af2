package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/javisen/esios-go/esios"
	"github.com/javisen/esios-go/logging"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
}

type AppConfigDatabase struct {
	Path string
	// How many days data should be stored in database before it gets purged
	DataRetentionDays *int `mapstructure:"data_retention_days"`
	// How many days daily backup files should be stored before they gets deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetDataRetentionDays() int {
	if d.DataRetentionDays == nil {
		return 90
	}
	return *d.DataRetentionDays
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 90
	}
	return *d.BackupRetentionDays
}

type AppConfigEsios struct {
	// Personal API token for api.esios.ree.es, granted by REE on request.
	// Without a token only the public PVPC archive is available.
	Token string
	// One of "2.0TD" and "2.0TD (Ceuta/Melilla)"
	Tariff *string
	// Preferred geo zone: "Península", "Canarias", "Baleares", "Ceuta", "Melilla"
	Zone *string
	// Local civil timezone used to interpret upstream timestamps
	Timezone *string
	// Indicator keys to fetch, default: a sensible household set
	Indicators []string
	RunAt      string `mapstructure:"run_at"`
}

func (e AppConfigEsios) GetTariff() string {
	if e.Tariff == nil {
		return esios.Tariffs[0]
	}
	return *e.Tariff
}

func (e AppConfigEsios) GetZone() string {
	if e.Zone == nil {
		return esios.ZonePeninsula
	}
	return *e.Zone
}

func (e AppConfigEsios) GetTimezone() string {
	if e.Timezone == nil {
		return "Europe/Madrid"
	}
	return *e.Timezone
}

func (e AppConfigEsios) GetIndicators() []string {
	if len(e.Indicators) > 0 {
		return e.Indicators
	}
	if e.Token == "" {
		return []string{esios.KeyPVPC, esios.KeyPeriod}
	}
	return []string{
		esios.KeyPVPC,
		esios.KeyInjection,
		esios.KeyIndexed,
		esios.KeyPeriod,
		esios.KeyCO2,
		esios.KeyRenewables,
	}
}

func (e AppConfigEsios) GetRunAt() string {
	if e.RunAt == "" {
		// Twice an hour, shortly after the feed updates
		return "10,40 * * * *"
	}
	return e.RunAt
}

type AppConfigMqtt struct {
	Host     string
	Port     int16
	Username string
	Password string
	// Prefix for state topics, default: "esios"
	TopicPrefix *string `mapstructure:"topic_prefix"`
}

func (m AppConfigMqtt) Enabled() bool {
	return m.Host != ""
}

func (m AppConfigMqtt) GetTopicPrefix() string {
	if m.TopicPrefix == nil {
		return "esios"
	}
	return *m.TopicPrefix
}

type AppConfigGui struct {
	// Timezone for displaying times in the GUI, default: UTC
	Timezone *string `mapstructure:"timezone"`
}

func (g AppConfigGui) GetTimezone() string {
	if g.Timezone == nil {
		return "UTC"
	}
	return *g.Timezone
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return "JSON"
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return "TEXT"
	}
	return "JSON"
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api      AppConfigApi
	Database AppConfigDatabase
	Esios    AppConfigEsios
	Mqtt     AppConfigMqtt
	Gui      AppConfigGui
	Logging  AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
