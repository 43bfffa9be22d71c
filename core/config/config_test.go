package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
		Bot:      BotConfig{AllowedUsers: []int64{111, 222}},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, Normalize(cfg))

	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, "shopping_data.json", cfg.Store.Path)
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	assert.Error(t, Normalize(cfg))
}

func TestNormalizeAllowedUsers(t *testing.T) {
	cfg := validConfig()
	cfg.Bot.AllowedUsers = nil
	assert.Error(t, Normalize(cfg), "empty allow-list")

	cfg = validConfig()
	cfg.Bot.AllowedUsers = []int64{111, -5}
	assert.Error(t, Normalize(cfg), "negative id")

	cfg = validConfig()
	cfg.Bot.AllowedUsers = []int64{111, 111}
	assert.Error(t, Normalize(cfg), "duplicate id")
}

func TestNormalizeRunModes(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling" // legacy alias
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)

	cfg = validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"
	assert.Error(t, Normalize(cfg))

	cfg = validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	assert.Error(t, Normalize(cfg), "webhook mode without url/listen/port")

	cfg = validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	cfg.Webhook = WebhookConfig{URL: "https://bot.example.com", Listen: "0.0.0.0", Port: 8443}
	require.NoError(t, Normalize(cfg))
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, []string{"callback", "message"}, cfg.RateLimit.ExcludeUpdates)

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	assert.Error(t, Normalize(cfg))
}

func TestIsAllowed(t *testing.T) {
	b := BotConfig{AllowedUsers: []int64{111, 222}}
	assert.True(t, b.IsAllowed(111))
	assert.True(t, b.IsAllowed(222))
	assert.False(t, b.IsAllowed(333))
	assert.False(t, b.IsAllowed(0))
}
