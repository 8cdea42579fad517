package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config defines service configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Log           LogConfig           `yaml:"log"`
	Database      DatabaseConfig      `yaml:"database"`
	Queue         QueueConfig         `yaml:"queue"`
	Mail          MailConfig          `yaml:"mail"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Demo          DemoConfig          `yaml:"demo"`
	Webhook       WebhookConfig       `yaml:"webhook"`

	// TimeZone drives daily buckets, exports and the summary schedule.
	TimeZone string         `yaml:"time_zone"`
	Location *time.Location `yaml:"-"`
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DatabaseConfig selects the lead store. An empty URL keeps leads in memory.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// QueueConfig enables RabbitMQ lead events when URL is set.
type QueueConfig struct {
	URL string `yaml:"url"`
}

type MailConfig struct {
	Host       string   `yaml:"host"`
	Port       int      `yaml:"port"`
	User       string   `yaml:"user"`
	Password   string   `yaml:"password"`
	From       string   `yaml:"from"`
	Recipients []string `yaml:"recipients"`
}

// Enabled reports whether an SMTP host and at least one recipient are set.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && len(m.Recipients) > 0
}

type NotificationsConfig struct {
	NewLead      bool   `yaml:"new_lead"`
	StatusChange bool   `yaml:"status_change"`
	DailySummary bool   `yaml:"daily_summary"`
	SummaryCron  string `yaml:"summary_cron"`
}

type DemoConfig struct {
	SeedCount           int           `yaml:"seed_count"`
	SynthesizerEnabled  bool          `yaml:"synthesizer_enabled"`
	SynthesizerInterval time.Duration `yaml:"synthesizer_interval"`
	SynthesizerChance   float64       `yaml:"synthesizer_probability"`

	// RandomSeed fixes generated data; zero picks a time-based seed.
	RandomSeed int64 `yaml:"random_seed"`
}

type WebhookConfig struct {
	RatePerMinute int    `yaml:"rate_per_minute"`
	Burst         int    `yaml:"burst"`
	APIKey        string `yaml:"api_key"`
	URL           string `yaml:"url"`

	// TrustProxyHeaders keys the rate limit on X-Forwarded-For / X-Real-IP.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Mail: MailConfig{
			Port: 587,
			From: "leads@localhost",
		},
		Notifications: NotificationsConfig{
			NewLead:      true,
			StatusChange: true,
			DailySummary: true,
			SummaryCron:  "0 9 * * *",
		},
		Demo: DemoConfig{
			SeedCount:           50,
			SynthesizerEnabled:  true,
			SynthesizerInterval: 30 * time.Second,
			SynthesizerChance:   0.3,
		},
		Webhook: WebhookConfig{
			RatePerMinute: 10,
			Burst:         5,
		},
		TimeZone: "UTC",
	}
}

// Load reads an optional YAML file named by LEADS_CONFIG_PATH and then
// applies environment overrides on top of the defaults.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("LEADS_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return finalize(cfg)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	e := &envReader{}

	e.intVar(&cfg.Server.Port, "PORT")
	e.listVar(&cfg.Server.CORSOrigins, "CORS_ALLOWED_ORIGINS")

	e.stringVar(&cfg.Log.Level, "LOG_LEVEL")
	e.stringVar(&cfg.Log.Format, "LOG_FORMAT")
	e.stringVar(&cfg.TimeZone, "TIMEZONE")

	e.stringVar(&cfg.Database.URL, "DATABASE_URL")
	e.stringVar(&cfg.Queue.URL, "AMQP_URL")

	e.stringVar(&cfg.Mail.Host, "SMTP_HOST")
	e.intVar(&cfg.Mail.Port, "SMTP_PORT")
	e.stringVar(&cfg.Mail.User, "SMTP_USER")
	e.stringVar(&cfg.Mail.Password, "SMTP_PASSWORD")
	e.stringVar(&cfg.Mail.From, "EMAIL_FROM")
	e.listVar(&cfg.Mail.Recipients, "ALERT_RECIPIENTS")

	e.boolVar(&cfg.Notifications.NewLead, "NOTIFY_NEW_LEAD")
	e.boolVar(&cfg.Notifications.StatusChange, "NOTIFY_STATUS_CHANGE")
	e.boolVar(&cfg.Notifications.DailySummary, "NOTIFY_DAILY_SUMMARY")
	e.stringVar(&cfg.Notifications.SummaryCron, "DAILY_SUMMARY_CRON")

	e.intVar(&cfg.Demo.SeedCount, "DEMO_SEED_COUNT")
	e.boolVar(&cfg.Demo.SynthesizerEnabled, "DEMO_SYNTHESIZER_ENABLED")
	e.durationVar(&cfg.Demo.SynthesizerInterval, "DEMO_SYNTHESIZER_INTERVAL")
	e.floatVar(&cfg.Demo.SynthesizerChance, "DEMO_SYNTHESIZER_PROBABILITY")
	e.int64Var(&cfg.Demo.RandomSeed, "DEMO_RANDOM_SEED")

	e.intVar(&cfg.Webhook.RatePerMinute, "WEBHOOK_RATE_PER_MINUTE")
	e.intVar(&cfg.Webhook.Burst, "WEBHOOK_RATE_BURST")
	e.stringVar(&cfg.Webhook.APIKey, "WEBSITE_FORMS_API_KEY")
	e.stringVar(&cfg.Webhook.URL, "WEBSITE_FORMS_WEBHOOK_URL")
	e.boolVar(&cfg.Webhook.TrustProxyHeaders, "TRUST_PROXY_HEADERS")

	return e.err
}

func finalize(cfg Config) (Config, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid time zone %q: %w", cfg.TimeZone, err)
	}
	cfg.Location = loc

	if cfg.Demo.SeedCount < 0 {
		return Config{}, fmt.Errorf("demo seed count must not be negative")
	}
	if cfg.Demo.SynthesizerChance < 0 || cfg.Demo.SynthesizerChance > 1 {
		return Config{}, fmt.Errorf("synthesizer probability must be within [0, 1]")
	}
	if cfg.Demo.SynthesizerEnabled && cfg.Demo.SynthesizerInterval <= 0 {
		return Config{}, fmt.Errorf("synthesizer interval must be positive")
	}
	if cfg.Webhook.RatePerMinute <= 0 {
		return Config{}, fmt.Errorf("webhook rate must be positive")
	}
	if cfg.Webhook.Burst <= 0 {
		cfg.Webhook.Burst = 1
	}

	if cfg.Webhook.APIKey == "" {
		cfg.Webhook.APIKey = "lf_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	if cfg.Webhook.URL == "" {
		cfg.Webhook.URL = fmt.Sprintf("http://localhost:%d/webhooks/leads", cfg.Server.Port)
	}

	return cfg, nil
}

// envReader applies set variables and keeps the first parse error.
type envReader struct {
	err error
}

func (e *envReader) lookup(key string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (e *envReader) fail(key string, err error) {
	e.err = fmt.Errorf("invalid %s: %w", key, err)
}

func (e *envReader) stringVar(dst *string, key string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) listVar(dst *[]string, key string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func (e *envReader) intVar(dst *int, key string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = n
}

func (e *envReader) int64Var(dst *int64, key string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = n
}

func (e *envReader) boolVar(dst *bool, key string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = b
}

func (e *envReader) floatVar(dst *float64, key string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = f
}

func (e *envReader) durationVar(dst *time.Duration, key string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = d
}
