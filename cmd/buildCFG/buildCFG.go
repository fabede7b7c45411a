package buildCFG

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"

	"clubconnect/internal/rabbit"
	"clubconnect/internal/repo"
)

const (
	BackendDynamo   = "dynamodb"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type ServerConfig struct {
	Port        string
	Mode        string
	CORSOrigins []string
}

type StoreConfig struct {
	Backend     string
	ClubsTable  string
	EventsTable string
}

type DynamoConfig struct {
	Region   string
	Endpoint string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type RelayConfig struct {
	Enabled    bool
	Recipients []string
	SMTP       SMTPConfig
}

func stringOr(cfg *config.Config, key, def string) string {
	if v := strings.TrimSpace(cfg.GetString(key)); v != "" {
		return v
	}
	return def
}

func intOr(cfg *config.Config, key string, def int) int {
	if v := cfg.GetInt(key); v != 0 {
		return v
	}
	return def
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	sc := ServerConfig{
		Port:        stringOr(cfg, "server.port", "8080"),
		Mode:        stringOr(cfg, "server.mode", "release"),
		CORSOrigins: cfg.GetStringSlice("server.cors_origins"),
	}
	if len(sc.CORSOrigins) == 0 {
		sc.CORSOrigins = []string{"http://localhost:4200"}
	}
	log.Info().Str("port", sc.Port).Str("mode", sc.Mode).Msg("server config loaded")
	return sc
}

func BuildLogLevel(cfg *config.Config) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.GetString("logging.level")))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func BuildStoreConfig(cfg *config.Config, log *zerolog.Logger) (StoreConfig, error) {
	sc := StoreConfig{
		Backend:     strings.ToLower(stringOr(cfg, "store.backend", BackendDynamo)),
		ClubsTable:  stringOr(cfg, "store.clubs_table", repo.ClubsCollection),
		EventsTable: stringOr(cfg, "store.events_table", repo.EventsCollection),
	}
	switch sc.Backend {
	case BackendDynamo, BackendPostgres, BackendMemory:
	default:
		return StoreConfig{}, fmt.Errorf("unknown store.backend %q", sc.Backend)
	}
	log.Info().Str("backend", sc.Backend).Msg("store config loaded")
	return sc, nil
}

func BuildDynamoConfig(cfg *config.Config) DynamoConfig {
	return DynamoConfig{
		Region:   stringOr(cfg, "dynamodb.region", "us-east-1"),
		Endpoint: cfg.GetString("dynamodb.endpoint"),
	}
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	masterDSN := cfg.GetString("postgres.master_dsn")
	if masterDSN == "" {
		return "", nil, nil, fmt.Errorf("postgres.master_dsn is required")
	}
	slaveDSNs := cfg.GetStringSlice("postgres.slave_dsns")

	lifetime := cfg.GetDuration("postgres.conn_max_lifetime")
	if lifetime == 0 {
		lifetime = 5 * time.Minute
	}
	opts := &dbpg.Options{
		MaxOpenConns:    intOr(cfg, "postgres.max_open_conns", 10),
		MaxIdleConns:    intOr(cfg, "postgres.max_idle_conns", 5),
		ConnMaxLifetime: lifetime,
	}
	log.Info().Int("slaves", len(slaveDSNs)).Int("max_open_conns", opts.MaxOpenConns).Msg("postgres config loaded")
	return masterDSN, slaveDSNs, opts, nil
}

func BuildMigrationsPath(cfg *config.Config) string {
	return stringOr(cfg, "postgres.migrations", "migrations/postgres")
}

// BuildRollbackOnShutdown reports whether down migrations run on exit. Meant
// for throwaway dev databases.
func BuildRollbackOnShutdown(cfg *config.Config) bool {
	return cfg.GetBool("postgres.rollback_on_shutdown")
}

// BuildRabbitConfig returns ok=false when no broker url is configured.
func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (rabbit.Config, bool) {
	rc := rabbit.Config{
		URL:        cfg.GetString("rabbitmq.url"),
		Exchange:   stringOr(cfg, "rabbitmq.exchange", "notificationExchange"),
		Queue:      stringOr(cfg, "rabbitmq.queue", "notificationQueue"),
		RoutingKey: stringOr(cfg, "rabbitmq.routing_key", "notificationKey"),
	}
	if rc.URL == "" {
		log.Warn().Msg("rabbitmq.url is empty; event notifications are disabled")
		return rc, false
	}
	return rc, true
}

func BuildRelayConfig(cfg *config.Config) RelayConfig {
	return RelayConfig{
		Enabled:    cfg.GetBool("relay.enabled"),
		Recipients: cfg.GetStringSlice("relay.recipients"),
		SMTP: SMTPConfig{
			Host:     cfg.GetString("smtp.host"),
			Port:     intOr(cfg, "smtp.port", 587),
			Username: cfg.GetString("smtp.username"),
			Password: cfg.GetString("smtp.password"),
			From:     cfg.GetString("smtp.from"),
		},
	}
}
