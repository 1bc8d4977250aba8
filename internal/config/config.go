package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"wikiquiz"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Security Security
	Source   Source
	Supply   Supply
	Game     Game
	AI       AI
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10"`
}

// DSN renders a keyword/value connection string understood by pgx.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode, p.MaxConns)
}

// Redis holds the replenish lock backend.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Security stores secrets for signing. An empty secret disables tokens.
type Security struct {
	QuestionHMACSecret string `env:"QUESTION_HMAC_SECRET"`
}

// Source configures the knowledge graph client.
type Source struct {
	SPARQLEndpoint string        `env:"SOURCE_SPARQL_ENDPOINT" envDefault:"https://query.wikidata.org/sparql"`
	UserAgent      string        `env:"SOURCE_USER_AGENT" envDefault:"wikiquiz/1.0 (question supply)"`
	ResultLimit    int           `env:"SOURCE_RESULT_LIMIT" envDefault:"100"`
	FetchTimeout   time.Duration `env:"SOURCE_FETCH_TIMEOUT" envDefault:"15s"`
}

// Supply governs pool serving and refill behavior.
type Supply struct {
	MaxPerRequest       int           `env:"SUPPLY_MAX_PER_REQUEST" envDefault:"50"`
	DistractorPoolsFile string        `env:"DISTRACTOR_POOLS_FILE"`
	ReplenishLockTTL    time.Duration `env:"REPLENISH_LOCK_TTL" envDefault:"30s"`
	PrefetchEnabled     bool          `env:"PREFETCH_ENABLED" envDefault:"true"`
	PrefetchInterval    time.Duration `env:"PREFETCH_INTERVAL" envDefault:"5m"`
	PrefetchThreshold   int           `env:"PREFETCH_THRESHOLD" envDefault:"10"`
	PrefetchTimeout     time.Duration `env:"PREFETCH_TIMEOUT" envDefault:"20s"`
}

// Game groups session scoring settings.
type Game struct {
	ScoringMode     string        `env:"GAME_SCORING_MODE" envDefault:"client"`
	BaseScore       int           `env:"GAME_BASE_SCORE" envDefault:"100"`
	MaxTimeBonus    int           `env:"GAME_MAX_TIME_BONUS" envDefault:"50"`
	TargetPerAnswer time.Duration `env:"GAME_TARGET_PER_ANSWER" envDefault:"15s"`
}

// AI configures the optional remote distractor service.
type AI struct {
	DistractorURL string        `env:"AI_DISTRACTOR_URL"`
	DistractorKey string        `env:"AI_DISTRACTOR_API_KEY"`
	HTTPTimeout   time.Duration `env:"AI_HTTP_TIMEOUT" envDefault:"6s"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPostgres parses only the database section, for tools that need
// nothing else.
func LoadPostgres() (Postgres, error) {
	var pg Postgres
	if err := env.Parse(&pg); err != nil {
		return Postgres{}, fmt.Errorf("parse postgres config: %w", err)
	}
	return pg, nil
}

func (a *App) validate() error {
	switch a.Game.ScoringMode {
	case "client", "server":
	default:
		return fmt.Errorf("GAME_SCORING_MODE must be client or server, got %q", a.Game.ScoringMode)
	}
	if a.Supply.MaxPerRequest <= 0 {
		return fmt.Errorf("SUPPLY_MAX_PER_REQUEST must be positive")
	}
	if a.Supply.PrefetchThreshold < 1 {
		return fmt.Errorf("PREFETCH_THRESHOLD must be at least 1")
	}
	return nil
}
