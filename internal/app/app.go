package app

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"zai-proxy/internal/api"
	"zai-proxy/internal/config"
	"zai-proxy/internal/database"
	"zai-proxy/internal/repository"
	"zai-proxy/internal/service"
	"zai-proxy/internal/usage"
	"zai-proxy/internal/zai"
)

const shutdownTimeout = 15 * time.Second

// App holds the wired server and the resources it must release.
type App struct {
	Config *config.Config
	Server *http.Server
	// DB and Usage are nil when the usage ledger is disabled.
	DB    *sql.DB
	Usage *usage.Pool
}

// NewApp wires every component from cfg without starting the server.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	var (
		recorder     usage.Recorder = usage.Nop{}
		usageHandler *api.UsageHandler
	)
	if cfg.UsageEnabled() {
		db, err := database.InitDB(cfg.UsageDBPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Successfully connected to SQLite database.", "path", cfg.UsageDBPath)

		repo := repository.NewSQLiteRepository(db)
		pool, err := usage.NewPool(usage.Config{
			Repository: repo,
			NumWorkers: cfg.UsageWorkers,
			QueueSize:  cfg.UsageQueueSize,
		})
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		a.DB, a.Usage = db, pool
		recorder = pool
		usageHandler = api.NewUsageHandler(service.NewUsageService(repo), cfg.Debug)
	}

	catalog := config.NewCatalog(config.DefaultModels)
	client := zai.NewClient(zai.Options{
		BaseURL: cfg.ProxyURL,
		Timeout: cfg.UpstreamTimeout,
		Headers: zai.DefaultHeaders(zai.HeaderOptions{
			Origin:         cfg.ProxyURL,
			FEVersion:      cfg.FEVersion,
			UserAgent:      cfg.UserAgent,
			AcceptLanguage: cfg.AcceptLanguage,
		}),
	})

	chatService := service.NewChatService(client, catalog, recorder)
	modelService := service.NewModelService(catalog)

	chatHandler := api.NewChatHandler(chatService, cfg.Debug)
	modelHandler := api.NewModelHandler(modelService)
	router := api.NewRouter(chatHandler, modelHandler, usageHandler, api.RouterOptions{Debug: cfg.Debug})

	a.Server = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}
	return a, nil
}

// Close drains the usage queue and closes the database. Call it after the
// server has stopped.
func (a *App) Close() error {
	if a.Usage != nil {
		a.Usage.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// Serve runs the server until ctx is canceled, then shuts it down.
func (a *App) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", a.Server.Addr, "debug", a.Config.Debug, "upstream", a.Config.ProxyURL)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Server.Shutdown(shutdownCtx)
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	logConfigSource()

	a, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Serve(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		return 1
	}
	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func parseLevel(logLevel string) slog.Level {
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogger installs the process-wide slog logger. format is json, text
// or pretty; anything else falls back to json.
func setupLogger(w io.Writer, logLevel, format string) {
	level := parseLevel(logLevel)

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "pretty":
		handler = charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
		})
	case "text":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
