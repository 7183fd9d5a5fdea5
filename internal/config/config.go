package config

import (
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	APP struct {
		Name  string `mapstructure:"NAME"`
		Port  string `mapstructure:"PORT"`
		State string `mapstructure:"STATE"`
	}

	DATABASE struct {
		Postgres struct {
			DSN             string `mapstructure:"DSN"`
			MaxConns        int32  `mapstructure:"MAX_CONNS"`
			ApplyMigrations bool   `mapstructure:"APPLY_MIGRATIONS"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
			DB       int    `mapstructure:"DB"`
		}
	}

	APP_SECRET struct {
		Paseto struct {
			HexKey string `mapstructure:"HEX_KEY"`
		}
	}

	MAILTRAP struct {
		Sandbox struct {
			SandboxURL    string `mapstructure:"SANDBOX_URL"`
			SandboxAPI    string `mapstructure:"SANDBOX_API"`
			SandboxDomain string `mapstructure:"SANDBOX_DOMAIN"`
		}
		API struct {
			MailtrapTokenAPI string `mapstructure:"MAILTRAP_TOKEN_API"`
			MailtrapURL      string `mapstructure:"MAILTRAP_URL"`
			MailtrapDomain   string `mapstructure:"MAILTRAP_DOMAIN"`
		}
	}

	SCHEDULER struct {
		Cron          string        `mapstructure:"CRON"`
		LookaheadDays int           `mapstructure:"LOOKAHEAD_DAYS"`
		Parallelism   int           `mapstructure:"PARALLELISM"`
		LockTTL       time.Duration `mapstructure:"LOCK_TTL"`
		SweepCron     string        `mapstructure:"SWEEP_CRON"`
	}

	COLLABORATOR struct {
		CrackURL    string        `mapstructure:"CRACK_URL"`
		MaterialURL string        `mapstructure:"MATERIAL_URL"`
		Timeout     time.Duration `mapstructure:"TIMEOUT"`
	}

	BRIDGE struct {
		Timeout time.Duration `mapstructure:"TIMEOUT"`
	}
}

func LoadConfig() *AppConfig {
	viper.SetConfigName("application")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Error().Err(err).Msg("Fehler beim Lesen der Konfigurationsdatei")
		return nil
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		log.Error().Err(err).Msg("Fehler beim Entpacken der Konfiguration")
		return nil
	}

	if config.DATABASE.Postgres.DSN == "" {
		log.Error().Msg("Datenbank-DSN ist nicht konfiguriert")
		return nil
	}

	if config.APP_SECRET.Paseto.HexKey == "" {
		config.APP_SECRET.Paseto.HexKey = utils.GenerateSymmetricKey()
	}

	ApplyDefaults(&config)

	log.Info().Msg("Konfiguration geladen...")
	return &config
}

// ApplyDefaults füllt fehlende Werte mit Standardwerten.
func ApplyDefaults(config *AppConfig) {
	if config.APP.Name == "" {
		config.APP.Name = "bmcms-maintenance"
	}
	if config.APP.Port == "" {
		config.APP.Port = "8080"
	}
	if config.DATABASE.Postgres.MaxConns <= 0 {
		config.DATABASE.Postgres.MaxConns = 20
	}
	if config.SCHEDULER.Cron == "" {
		config.SCHEDULER.Cron = "0 * * * *"
	}
	if config.SCHEDULER.SweepCron == "" {
		config.SCHEDULER.SweepCron = "*/15 * * * *"
	}
	if config.SCHEDULER.LookaheadDays <= 0 {
		config.SCHEDULER.LookaheadDays = 30
	}
	if config.SCHEDULER.Parallelism <= 0 {
		config.SCHEDULER.Parallelism = 4
	}
	if config.SCHEDULER.LockTTL <= 0 {
		config.SCHEDULER.LockTTL = 10 * time.Minute
	}
	if config.COLLABORATOR.Timeout <= 0 {
		config.COLLABORATOR.Timeout = 5 * time.Second
	}
	if config.BRIDGE.Timeout <= 0 {
		config.BRIDGE.Timeout = 2 * time.Second
	}
}
