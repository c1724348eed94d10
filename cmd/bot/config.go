package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	TelegramToken string
	ManagerChatID int64
	DBDSN         string
	MediaDir      string
	AllowedCities []string
	MinMetrage    int
	FirstDelay    time.Duration
	SecondDelay   time.Duration
	PollInterval  time.Duration
	PortfolioURL  string
	WebhookURL    string
	WebhookSecret string
	HTTPAddr      string
	AMQPURL       string
	LogLevel      slog.Level
}

// loadConfig reads the configuration through getenv; os.Getenv in production.
func loadConfig(getenv func(string) string) (Config, error) {
	env := envReader{getenv: getenv}

	config := Config{
		TelegramToken: env.required("TELEGRAM_BOT_TOKEN"),
		DBDSN:         env.orDefault("DB_DSN", "./data/leads.db"),
		MediaDir:      env.orDefault("MEDIA_DIR", "./media"),
		PortfolioURL:  env.orDefault("PORTFOLIO_URL", "https://t.me/remontkvartirRND61"),
		WebhookURL:    getenv("WEBHOOK_URL"),    // Optional - if set, uses webhook mode
		WebhookSecret: getenv("WEBHOOK_SECRET"), // Last path segment of the webhook route
		HTTPAddr:      env.orDefault("HTTP_ADDR", ":8080"),
		AMQPURL:       getenv("AMQP_URL"), // Optional - CRM export is off when empty
	}

	config.ManagerChatID = env.int64Value("MANAGER_CHAT_ID", "")
	config.MinMetrage = env.intValue("MIN_METRAGE", "40")
	config.FirstDelay = time.Duration(env.intValue("BROADCAST_FIRST_DELAY_MIN", "60")) * time.Minute
	config.SecondDelay = time.Duration(env.intValue("BROADCAST_SECOND_DELAY_MIN", "1440")) * time.Minute
	config.PollInterval = env.durationValue("BROADCAST_POLL_INTERVAL", "60s")

	for _, city := range strings.Split(env.orDefault("ALLOWED_CITIES", "Ростов-на-Дону,Аксай,Батайск"), ",") {
		if city = strings.TrimSpace(city); city != "" {
			config.AllowedCities = append(config.AllowedCities, city)
		}
	}
	if len(config.AllowedCities) == 0 {
		env.fail("ALLOWED_CITIES must list at least one city")
	}

	if err := config.LogLevel.UnmarshalText([]byte(env.orDefault("LOG_LEVEL", "info"))); err != nil {
		env.fail(fmt.Sprintf("invalid LOG_LEVEL: %v", err))
	}

	if config.WebhookURL != "" && config.WebhookSecret == "" {
		env.fail("WEBHOOK_SECRET is required when WEBHOOK_URL is set")
	}

	if len(env.problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(env.problems, "; "))
	}
	return config, nil
}

// webhookEndpoint is the URL registered with Telegram
func (c Config) webhookEndpoint() string {
	return strings.TrimRight(c.WebhookURL, "/") + "/telegram/" + c.WebhookSecret
}

// envReader collects every problem so start-up reports them together
type envReader struct {
	getenv   func(string) string
	problems []string
}

func (e *envReader) fail(problem string) {
	e.problems = append(e.problems, problem)
}

func (e *envReader) required(key string) string {
	value := e.getenv(key)
	if value == "" {
		e.fail(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return value
}

func (e *envReader) orDefault(key, defaultValue string) string {
	if value := e.getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (e *envReader) value(key, defaultValue string) string {
	if defaultValue == "" {
		return e.required(key)
	}
	return e.orDefault(key, defaultValue)
}

func (e *envReader) int64Value(key, defaultValue string) int64 {
	raw := e.value(key, defaultValue)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		e.fail(fmt.Sprintf("invalid %s %q: must be an integer", key, raw))
	}
	return n
}

func (e *envReader) intValue(key, defaultValue string) int {
	raw := e.value(key, defaultValue)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		e.fail(fmt.Sprintf("invalid %s %q: must be a non-negative integer", key, raw))
	}
	return n
}

func (e *envReader) durationValue(key, defaultValue string) time.Duration {
	raw := e.value(key, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		e.fail(fmt.Sprintf("invalid %s %q: must be a positive duration", key, raw))
	}
	return d
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
