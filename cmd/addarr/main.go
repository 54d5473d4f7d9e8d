package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/addarr/addarr/internal/arrapi"
	"github.com/addarr/addarr/internal/bot"
	"github.com/addarr/addarr/internal/config"
	"github.com/addarr/addarr/internal/downloadclient"
	"github.com/addarr/addarr/internal/health"
	"github.com/addarr/addarr/internal/i18n"
	"github.com/addarr/addarr/internal/logging"
	"github.com/addarr/addarr/internal/media"
	"github.com/addarr/addarr/internal/version"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file (default: ./config.yaml or /app/config.yaml)")
	translationsDir := flag.String("translations", "./translations", "Directory with translation tables")
	showVersion := flag.Bool("version", false, "Show version and exit")
	checkOnly := flag.Bool("check", false, "Run health checks against configured services and exit")
	validateI18n := flag.Bool("validate-i18n", false, "Verify translation tables cover the fallback keys and exit")
	flag.Parse()

	if *showVersion {
		info := version.Get()
		fmt.Printf("addarr %s\n", info.Version)
		fmt.Printf("  Commit:     %s\n", info.Commit)
		fmt.Printf("  Built:      %s\n", info.BuildDate)
		fmt.Printf("  Go version: %s\n", info.GoVersion)
		fmt.Printf("  OS/Arch:    %s\n", info.Platform)
		os.Exit(0)
	}

	if *validateI18n {
		os.Exit(runValidateI18n(*translationsDir))
	}

	// Load config
	cfg, resolvedPath, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logging - env vars override config
	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	logFormat := cfg.Logging.Format
	if envFormat := os.Getenv("LOG_FORMAT"); envFormat != "" {
		logFormat = envFormat
	}
	logger := logging.Setup(logging.Options{Level: logLevel, Format: logFormat, File: cfg.Logging.File})
	info := version.Get()
	logger.Info("starting addarr",
		"version", info.Version,
		"commit", info.Commit,
		"built", info.BuildDate,
	)

	svc, probes := buildServices(cfg, logger)
	monitor := health.NewMonitor(probes, logger)

	if *checkOnly {
		os.Exit(runCheck(monitor))
	}

	translator, err := i18n.NewTranslator(*translationsDir, cfg.Language, logger)
	if err != nil {
		logger.Error("failed to load translations", "error", err)
		os.Exit(1)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Error("failed to connect to telegram", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to telegram", "bot", api.Self.UserName)

	auth := bot.NewAuthenticator(cfg, resolvedPath, logger)
	b := bot.New(api, bot.Deps{
		Media:      svc,
		Health:     monitor,
		Auth:       auth,
		Translator: translator,
		Logger:     logger,
	})

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	if cfg.Health.Enable {
		monitor.Start(time.Duration(cfg.Health.IntervalMinutes) * time.Minute)
		defer monitor.Stop()
	}

	b.Run(ctx)
}

// buildServices wires every enabled client and the matching health probes
func buildServices(cfg *config.Config, logger *slog.Logger) (*media.Service, []health.Probe) {
	deps := media.Deps{
		SeasonFolder: cfg.Sonarr.Features.SeasonFolder,
		Logger:       logger,
	}
	var probes []health.Probe

	if cfg.Radarr.Enable {
		client := arrapi.NewRadarrClient(arrClientConfig("radarr", cfg.Radarr, logger))
		deps.Radarr = client
		probes = append(probes, arrProbe("Radarr", client.Client))
		logger.Debug("radarr enabled", "url", cfg.Radarr.Server.URL())
	}
	if cfg.Sonarr.Enable {
		client := arrapi.NewSonarrClient(arrClientConfig("sonarr", cfg.Sonarr, logger))
		deps.Sonarr = client
		probes = append(probes, arrProbe("Sonarr", client.Client))
		logger.Debug("sonarr enabled", "url", cfg.Sonarr.Server.URL())
	}
	if cfg.Lidarr.Enable {
		client := arrapi.NewLidarrClient(arrClientConfig("lidarr", cfg.Lidarr, logger))
		deps.Lidarr = client
		probes = append(probes, arrProbe("Lidarr", client.Client))
		logger.Debug("lidarr enabled", "url", cfg.Lidarr.Server.URL())
	}
	if cfg.Transmission.Enable {
		client := downloadclient.NewTransmissionClient(downloadclient.TransmissionConfig{
			Host:     cfg.Transmission.Host,
			Port:     cfg.Transmission.Port,
			SSL:      cfg.Transmission.SSL,
			Username: cfg.Transmission.Username,
			Password: cfg.Transmission.Password,
			Logger:   logger,
		})
		deps.Transmission = client
		probes = append(probes, health.Probe{
			Name: "Transmission",
			Check: func(ctx context.Context) (string, error) {
				return client.Version(ctx)
			},
		})
		logger.Debug("transmission enabled", "host", cfg.Transmission.Host)
	}
	if cfg.Sabnzbd.Enable {
		client := downloadclient.NewSABnzbdClient(downloadclient.SABnzbdConfig{
			BaseURL: cfg.Sabnzbd.Server.URL(),
			APIKey:  cfg.Sabnzbd.Auth.APIKey,
			Logger:  logger,
		})
		deps.Sabnzbd = client
		probes = append(probes, health.Probe{
			Name: "SABnzbd",
			Check: func(ctx context.Context) (string, error) {
				return client.Version(ctx)
			},
		})
		logger.Debug("sabnzbd enabled", "url", cfg.Sabnzbd.Server.URL())
	}

	return media.NewService(deps), probes
}

func arrClientConfig(name string, svc config.ServiceConfig, logger *slog.Logger) arrapi.ClientConfig {
	return arrapi.ClientConfig{
		Name:                  name,
		BaseURL:               svc.Server.URL(),
		APIKey:                svc.Auth.APIKey,
		Logger:                logger,
		ExcludedRootFolders:   svc.Paths.ExcludedRootFolders,
		NarrowRootFolderNames: svc.Paths.NarrowRootFolderNames,
		ExcludedProfiles:      svc.Quality.ExcludedProfiles,
	}
}

func arrProbe(name string, client *arrapi.Client) health.Probe {
	return health.Probe{
		Name: name,
		Check: func(ctx context.Context) (string, error) {
			status, err := client.SystemStatus(ctx)
			if err != nil {
				return "", err
			}
			return status.Version, nil
		},
	}
}

// runCheck probes every configured service once and reports pass/fail
func runCheck(monitor *health.Monitor) int {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results := monitor.RunChecks(ctx)
	exitCode := 0
	for _, r := range results {
		marker := "ok"
		if !r.Healthy {
			marker = "FAIL"
			exitCode = 1
		}
		fmt.Printf("%-14s %-4s %s\n", r.Name, marker, r.Status)
	}
	return exitCode
}

// runValidateI18n loads every translation table and reports keys missing
// relative to the fallback language
func runValidateI18n(dir string) int {
	translator, err := i18n.NewTranslator(dir, i18n.FallbackLanguage, slog.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading translations: %v\n", err)
		return 1
	}

	missing := translator.Validate()
	if len(missing) == 0 {
		fmt.Printf("all %d translation tables complete\n", len(translator.Languages()))
		return 0
	}
	for lang, keys := range missing {
		for _, key := range keys {
			fmt.Printf("%s: missing %s\n", lang, key)
		}
	}
	return 1
}
