package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"github.com/dskvich/oracai/pkg/api"
	"github.com/dskvich/oracai/pkg/assets"
	"github.com/dskvich/oracai/pkg/gemini"
	"github.com/dskvich/oracai/pkg/logger"
	"github.com/dskvich/oracai/pkg/repository"
	"github.com/dskvich/oracai/pkg/services"
	"github.com/dskvich/oracai/pkg/telemetry"
	"github.com/dskvich/oracai/pkg/workers"
)

type Config struct {
	GoogleAPIKey           string        `env:"GOOGLE_API_KEY,required"`
	GeminiBaseURL          string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai"`
	GeminiModel            string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash-001"`
	GeminiRequestTimeout   time.Duration `env:"GEMINI_REQUEST_TIMEOUT" envDefault:"60s"`
	HTTPAddr               string        `env:"HTTP_ADDR" envDefault:":8501"`
	MaxUploadBytes         int64         `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionJanitorInterval time.Duration `env:"SESSION_JANITOR_INTERVAL" envDefault:"10m"`
	AssetTimeout           time.Duration `env:"ASSET_TIMEOUT" envDefault:"10s"`
	LogLevel               string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile                string        `env:"LOG_FILE"`
	LogNoColor             bool          `env:"LOG_NO_COLOR"`
	TelemetryEnabled       bool          `env:"TELEMETRY_ENABLED"`
	TelemetryDir           string        `env:"TELEMETRY_DIR" envDefault:"logs"`
}

const defaultConfigFile = "config.json"

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("Shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}

func runMain() error {
	cfg, err := loadConfig(os.Environ())
	if err != nil {
		return err
	}

	log, closer, err := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		NoColor: cfg.LogNoColor,
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(log)

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		Enabled: cfg.TelemetryEnabled,
		Dir:     cfg.TelemetryDir,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer shutdownTelemetry()

	workerGroup, err := setupWorkers(ctx, cfg)
	if err != nil {
		return err
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			slog.Info("Shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

// loadConfig reads an optional flat JSON file (CONFIG_FILE, config.json by default) and lets the
// process environment override it.
func loadConfig(environ []string) (*Config, error) {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	path, explicit := vars["CONFIG_FILE"]
	if !explicit {
		path = defaultConfigFile
	}

	fileVars, err := readConfigFile(path)
	if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	for k, v := range vars {
		fileVars[k] = v
	}

	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: fileVars}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

func readConfigFile(path string) (map[string]string, error) {
	vars := map[string]string{}

	data, err := os.ReadFile(path)
	if err != nil {
		return vars, err
	}

	if !gjson.ValidBytes(data) {
		return vars, fmt.Errorf("%s is not valid JSON", path)
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return vars, fmt.Errorf("%s must hold a JSON object", path)
	}

	parsed.ForEach(func(key, value gjson.Result) bool {
		vars[key.String()] = value.String()
		return true
	})

	return vars, nil
}

func setupWorkers(ctx context.Context, cfg *Config) (workers.Group, error) {
	var workerGroup workers.Group

	promptCatalog := repository.NewPromptCatalog()
	sessionRepository := repository.NewSessionRepository(cfg.SessionTTL)

	geminiClient, err := gemini.NewClient(gemini.Config{
		APIKey:  cfg.GoogleAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiRequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	assistantService := services.NewAssistantService(
		geminiClient,
		promptCatalog,
		sessionRepository,
	)

	animations := assets.NewLoader(cfg.AssetTimeout).Preload(ctx, assets.DefaultURLs)

	gin.SetMode(gin.ReleaseMode)
	router, err := api.NewRouter(api.Config{
		Assistant:      assistantService,
		Animations:     animations,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("creating router: %w", err)
	}

	httpServer, err := workers.NewHTTPServer(cfg.HTTPAddr, router)
	if err != nil {
		return nil, fmt.Errorf("creating http server: %w", err)
	}
	workerGroup = append(workerGroup, httpServer)

	if cfg.SessionTTL > 0 {
		janitor, err := workers.NewSessionJanitor(sessionRepository, cfg.SessionJanitorInterval)
		if err != nil {
			return nil, fmt.Errorf("creating session janitor: %w", err)
		}
		workerGroup = append(workerGroup, janitor)
	}

	return workerGroup, nil
}
