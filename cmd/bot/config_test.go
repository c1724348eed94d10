package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig(envMap(map[string]string{
		"TELEGRAM_BOT_TOKEN": "token",
		"MANAGER_CHAT_ID":    "-100123",
	}))
	require.NoError(t, err)

	assert.Equal(t, int64(-100123), config.ManagerChatID)
	assert.Equal(t, "./data/leads.db", config.DBDSN)
	assert.Equal(t, []string{"Ростов-на-Дону", "Аксай", "Батайск"}, config.AllowedCities)
	assert.Equal(t, 40, config.MinMetrage)
	assert.Equal(t, time.Hour, config.FirstDelay)
	assert.Equal(t, 24*time.Hour, config.SecondDelay)
	assert.Equal(t, time.Minute, config.PollInterval)
	assert.Equal(t, slog.LevelInfo, config.LogLevel)
	assert.Empty(t, config.AMQPURL)
}

func TestLoadConfigOverrides(t *testing.T) {
	config, err := loadConfig(envMap(map[string]string{
		"TELEGRAM_BOT_TOKEN":        "token",
		"MANAGER_CHAT_ID":           "5",
		"ALLOWED_CITIES":            " Аксай , ,Батайск",
		"MIN_METRAGE":               "30",
		"BROADCAST_FIRST_DELAY_MIN": "5",
		"BROADCAST_POLL_INTERVAL":   "10s",
		"LOG_LEVEL":                 "debug",
		"WEBHOOK_URL":               "https://bot.example.com/",
		"WEBHOOK_SECRET":            "abc",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"Аксай", "Батайск"}, config.AllowedCities)
	assert.Equal(t, 30, config.MinMetrage)
	assert.Equal(t, 5*time.Minute, config.FirstDelay)
	assert.Equal(t, 10*time.Second, config.PollInterval)
	assert.Equal(t, slog.LevelDebug, config.LogLevel)
	assert.Equal(t, "https://bot.example.com/telegram/abc", config.webhookEndpoint())
}

func TestLoadConfigReportsAllProblems(t *testing.T) {
	_, err := loadConfig(envMap(map[string]string{
		"MANAGER_CHAT_ID": "not-a-number",
		"MIN_METRAGE":     "-1",
		"WEBHOOK_URL":     "https://bot.example.com",
	}))
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "TELEGRAM_BOT_TOKEN")
	assert.Contains(t, msg, "MANAGER_CHAT_ID")
	assert.Contains(t, msg, "MIN_METRAGE")
	assert.Contains(t, msg, "WEBHOOK_SECRET")
}

func TestLoadConfigRejectsBadInterval(t *testing.T) {
	_, err := loadConfig(envMap(map[string]string{
		"TELEGRAM_BOT_TOKEN":      "token",
		"MANAGER_CHAT_ID":         "5",
		"BROADCAST_POLL_INTERVAL": "soon",
	}))
	assert.ErrorContains(t, err, "BROADCAST_POLL_INTERVAL")
}
