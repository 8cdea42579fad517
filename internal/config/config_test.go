package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadpulse/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LEADS_CONFIG_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("WEBSITE_FORMS_API_KEY", "")
	t.Setenv("WEBSITE_FORMS_WEBHOOK_URL", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("TRUST_PROXY_HEADERS", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 30*time.Second, cfg.Demo.SynthesizerInterval)
	assert.True(t, strings.HasPrefix(cfg.Webhook.APIKey, "lf_"))
	assert.Len(t, cfg.Webhook.APIKey, 35)
	assert.Equal(t, "http://localhost:8080/webhooks/leads", cfg.Webhook.URL)
	assert.False(t, cfg.Webhook.TrustProxyHeaders)
}

// TestEnvOverridesFile - environment wins over the YAML file
func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.yaml")
	yaml := `
server:
  port: 9090
mail:
  host: smtp.acme.io
  recipients: [sales@acme.io]
demo:
  seed_count: 5
  synthesizer_interval: 45s
time_zone: Europe/Lisbon
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("LEADS_CONFIG_PATH", path)
	t.Setenv("PORT", "7070")
	t.Setenv("ALERT_RECIPIENTS", "a@acme.io, b@acme.io,")
	t.Setenv("DEMO_SYNTHESIZER_PROBABILITY", "0.5")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"a@acme.io", "b@acme.io"}, cfg.Mail.Recipients)
	assert.True(t, cfg.Mail.Enabled())
	assert.Equal(t, 5, cfg.Demo.SeedCount)
	assert.Equal(t, 45*time.Second, cfg.Demo.SynthesizerInterval)
	assert.Equal(t, 0.5, cfg.Demo.SynthesizerChance)
	assert.Equal(t, "Europe/Lisbon", cfg.Location.String())
	assert.True(t, cfg.Webhook.TrustProxyHeaders)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non-numeric port", "PORT", "http"},
		{"bad bool", "NOTIFY_NEW_LEAD", "sometimes"},
		{"bad duration", "DEMO_SYNTHESIZER_INTERVAL", "soon"},
		{"probability above one", "DEMO_SYNTHESIZER_PROBABILITY", "1.5"},
		{"negative seed count", "DEMO_SEED_COUNT", "-1"},
		{"unknown zone", "TIMEZONE", "Mars/Olympus"},
		{"zero rate", "WEBHOOK_RATE_PER_MINUTE", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LEADS_CONFIG_PATH", "")
			t.Setenv(tt.key, tt.val)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("LEADS_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestMailDisabledWithoutRecipients(t *testing.T) {
	assert.False(t, config.MailConfig{Host: "smtp.acme.io"}.Enabled())
	assert.False(t, config.MailConfig{Recipients: []string{"a@acme.io"}}.Enabled())
}
