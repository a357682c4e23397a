package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"starboard/clients/discord"
	"starboard/config"
	"starboard/core/log"
	"starboard/db"
	"starboard/handlers"
	"starboard/middleware"
	"starboard/services/boardregistry"
	"starboard/services/boards"
	"starboard/services/commands"
	"starboard/usecases/boardsync"
)

const (
	appName         = "starboard"
	shutdownTimeout = 5 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Fatal error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Mirrors popular Discord messages into a board channel",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Connect to the Discord gateway and serve the health endpoint (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations and exit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate(cmd.Context())
			},
		},
	)

	return rootCmd
}

func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := log.Configure(cfg.LogLevel, cfg.Environment); err != nil {
		return nil, err
	}
	return cfg, nil
}

func migrate(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	dbConn, err := db.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	return db.RunMigrations(ctx, dbConn, cfg.DatabaseSchema)
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackConfig.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     appName,
		LogsURL:     cfg.ServerLogsURL,
	})
	defer alertMiddleware.Flush()
	if !cfg.SlackConfig.IsConfigured() {
		log.Warn("⚠️ SLACK_ALERT_WEBHOOK_URL is not set - failures will only be logged")
	}

	dbConn, err := db.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, dbConn, cfg.DatabaseSchema); err != nil {
			return err
		}
	}

	boardsRepo := db.NewPostgresBoardsRepository(dbConn, cfg.DatabaseSchema)
	mappingsRepo := db.NewPostgresMessageMappingsRepository(dbConn, cfg.DatabaseSchema)

	boardsService := boards.NewBoardsService(boardsRepo, mappingsRepo)
	boardRegistry := boardregistry.NewBoardRegistry(boardsService)
	commandsService := commands.NewCommandsService(boardsService)

	session, err := discordgo.New("Bot " + cfg.DiscordConfig.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	discordClient := discord.NewDiscordClient(session)

	boardSyncUseCase := boardsync.NewBoardSyncUseCase(boardRegistry, boardsService, discordClient)
	discordHandler := handlers.NewDiscordEventsHandler(
		session,
		boardSyncUseCase,
		commandsService,
		alertMiddleware,
		cfg.DiscordConfig.GuildID,
		cfg.EventTimeout,
		cfg.EventWorkers,
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(handlers.NewHealthHandler(dbConn), alertMiddleware),
		ReadHeaderTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("✅ Listening", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := discordHandler.StartBot(); err != nil {
			return err
		}
		<-gctx.Done()
		discordHandler.StopBot()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("🛑 Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down health server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("❌ Server exited with error", "error", err)
		return err
	}

	log.Info("✅ Shutdown complete")
	return nil
}
