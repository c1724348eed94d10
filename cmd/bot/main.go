package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/bot"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/broadcast"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/crm"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/db"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/flow"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/notify"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/server"
	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	// Load configuration from environment
	config, err := loadConfig(os.Getenv)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(config.LogLevel))
	slog.Info("Starting lead bot...")

	if err := run(config); err != nil {
		slog.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(config Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	slog.Info("Initializing database...", "driver", db.DetectDriver(config.DBDSN))
	database, err := db.New(config.DBDSN)
	if err != nil {
		return err
	}
	defer database.Close()

	// Initialize bot
	slog.Info("Starting Telegram bot...")
	telegramBot, err := bot.New(bot.Config{
		Token:      config.TelegramToken,
		WebhookURL: webhookURL(config),
	})
	if err != nil {
		return err
	}

	opts := []flow.Option{}
	if config.AMQPURL != "" {
		broker, err := crm.Dial(config.AMQPURL)
		if err != nil {
			return err
		}
		defer broker.Close()
		opts = append(opts, flow.WithExporter(crm.NewPublisher(broker.Ch)))
		slog.Info("CRM export enabled", "exchange", crm.ExchangeName)
	}

	machine := flow.New(flow.Config{
		Cities:       config.AllowedCities,
		MinMetrage:   config.MinMetrage,
		PortfolioURL: config.PortfolioURL,
		WelcomePhoto: filepath.Join(config.MediaDir, "welcome.jpg"),
	}, session.NewStore(), database, telegramBot, notify.NewOperator(telegramBot, config.ManagerChatID), opts...)
	telegramBot.SetHandler(machine)

	// Start re-engagement broadcasts
	scheduler := broadcast.New(database, telegramBot,
		broadcast.DefaultBroadcasts(config.MediaDir, config.FirstDelay, config.SecondDelay),
		broadcast.WithInterval(config.PollInterval))
	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		scheduler.Run(ctx)
	}()

	serverCfg := server.Config{}
	if config.WebhookURL != "" {
		serverCfg.WebhookSecret = config.WebhookSecret
		serverCfg.Webhook = telegramBot.HandleWebhook
	}
	srv := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           server.NewRouter(serverCfg, database),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "addr", config.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	slog.Info("Bot is running. Press Ctrl+C to stop.")

	// Run the bot (blocks until shutdown)
	runErr := telegramBot.Run(ctx)
	stop()

	// Stop intake first, then drain handlers and the scheduler before the
	// deferred store and broker closes run.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown", "error", err)
	}
	telegramBot.Wait()
	<-schedulerDone
	slog.Info("Shutdown complete")
	return runErr
}

func webhookURL(config Config) string {
	if config.WebhookURL == "" {
		return ""
	}
	return config.webhookEndpoint()
}
